package input

import (
	"testing"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	directions []types.Direction
	accept     bool
}

func (s *recordingSetter) SetDirection(direction types.Direction) bool {
	s.directions = append(s.directions, direction)
	return s.accept
}

func TestDirectionForKey(t *testing.T) {
	tests := []struct {
		key  string
		want types.Direction
		ok   bool
	}{
		{key: "ArrowUp", want: types.DirectionUp, ok: true},
		{key: "ArrowDown", want: types.DirectionDown, ok: true},
		{key: "ArrowLeft", want: types.DirectionLeft, ok: true},
		{key: "ArrowRight", want: types.DirectionRight, ok: true},
		{key: "arrowup"},
		{key: "w"},
		{key: ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := DirectionForKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRouter_Route(t *testing.T) {
	setter := &recordingSetter{accept: true}
	router := NewRouter(setter)

	assert.True(t, router.Route("ArrowLeft"))
	assert.False(t, router.Route("Enter"))
	assert.Equal(t, []types.Direction{types.DirectionLeft}, setter.directions)

	setter.accept = false
	assert.False(t, router.Route("ArrowUp"))
}

func TestRouter_Route_game(t *testing.T) {
	gm := game.NewGameManager(game.NewGameManagerOptions{FoodSpawner: game.NewSeededFoodSpawner(1)})
	router := NewRouter(gm)

	assert.False(t, router.Route("ArrowUp"), "idle games ignore input")

	require.NoError(t, gm.Start())
	assert.False(t, router.Route("ArrowLeft"), "reverse")
	assert.True(t, router.Route("ArrowUp"))
	assert.False(t, router.Route("ArrowDown"), "second change in the same tick")

	require.NoError(t, gm.Tick())
	assert.Equal(t, types.Cell{X: 10, Y: 9}, gm.Snapshot().Snake[0])
}
