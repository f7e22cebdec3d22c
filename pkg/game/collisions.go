package game

import "github.com/cbodonnell/snake/pkg/game/types"

// HitsWall reports whether the cell lies outside the square grid.
func HitsWall(cell types.Cell, gridSize int) bool {
	return cell.X < 0 || cell.X >= gridSize || cell.Y < 0 || cell.Y >= gridSize
}

// HitsSelf reports whether head lands on any cell of body.
func HitsSelf(head types.Cell, body []types.Cell) bool {
	for _, c := range body {
		if c == head {
			return true
		}
	}
	return false
}

// collisionBody returns the cells the new head must not land on this tick.
// The current head is excluded, and so is the tail when it is vacated by a plain move.
func collisionBody(snake types.Snake, eating bool) []types.Cell {
	body := snake[1:]
	if !eating && len(body) > 0 {
		body = body[:len(body)-1]
	}
	return body
}
