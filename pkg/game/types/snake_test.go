package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceHead(t *testing.T) {
	snake := Snake{{X: 10, Y: 10}}
	tests := []struct {
		direction Direction
		want      Cell
	}{
		{DirectionUp, Cell{X: 10, Y: 9}},
		{DirectionDown, Cell{X: 10, Y: 11}},
		{DirectionLeft, Cell{X: 9, Y: 10}},
		{DirectionRight, Cell{X: 11, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, AdvanceHead(snake, tt.direction))
		})
	}
}

func TestAdvanceHead_noWraparound(t *testing.T) {
	assert.Equal(t, Cell{X: -1, Y: 3}, AdvanceHead(Snake{{X: 0, Y: 3}}, DirectionLeft))
}

func TestApplyMove(t *testing.T) {
	snake := Snake{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}}
	moved := ApplyMove(snake, Cell{X: 4, Y: 3})

	assert.Equal(t, Snake{{X: 4, Y: 3}, {X: 3, Y: 3}, {X: 2, Y: 3}}, moved)
	// the input is left untouched
	assert.Equal(t, Cell{X: 1, Y: 3}, snake.Tail())
}

func TestApplyEat(t *testing.T) {
	snake := Snake{{X: 3, Y: 3}, {X: 2, Y: 3}}
	grown := ApplyEat(snake, Cell{X: 3, Y: 2})

	assert.Equal(t, Snake{{X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}}, grown)
	assert.Len(t, snake, 2)
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight} {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		assert.Equal(t, -dx, ox, d.String())
		assert.Equal(t, -dy, oy, d.String())
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestGameState_Snapshot_copiesSnake(t *testing.T) {
	state := NewGameState()
	state.Snake = Snake{{X: 1, Y: 1}, {X: 0, Y: 1}}

	snapshot := state.Snapshot(20)
	snapshot.Snake[0] = Cell{X: 9, Y: 9}

	assert.Equal(t, Cell{X: 1, Y: 1}, state.Snake.Head())
	assert.Equal(t, 20, snapshot.GridSize)
	assert.Equal(t, state.ID.String(), snapshot.GameID)
}
