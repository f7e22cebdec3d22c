package types

// Snake is the ordered list of occupied cells, head first.
// It is never empty once a game has started and its cells are pairwise distinct.
type Snake []Cell

func (s Snake) Head() Cell {
	return s[0]
}

func (s Snake) Tail() Cell {
	return s[len(s)-1]
}

// AdvanceHead returns the cell the head would move to. There is no wraparound.
func AdvanceHead(snake Snake, direction Direction) Cell {
	return snake.Head().Add(direction)
}

// ApplyEat prepends head and keeps the tail, growing the snake by one.
func ApplyEat(snake Snake, head Cell) Snake {
	grown := make(Snake, 0, len(snake)+1)
	grown = append(grown, head)
	return append(grown, snake...)
}

// ApplyMove prepends head and drops the tail.
func ApplyMove(snake Snake, head Cell) Snake {
	moved := make(Snake, 0, len(snake))
	moved = append(moved, head)
	return append(moved, snake[:len(snake)-1]...)
}

// Occupied returns the set of cells covered by the snake.
func (s Snake) Occupied() map[Cell]struct{} {
	occupied := make(map[Cell]struct{}, len(s))
	for _, c := range s {
		occupied[c] = struct{}{}
	}
	return occupied
}

func (s Snake) Contains(cell Cell) bool {
	for _, c := range s {
		if c == cell {
			return true
		}
	}
	return false
}

func (s Snake) Copy() Snake {
	c := make(Snake, len(s))
	copy(c, s)
	return c
}
