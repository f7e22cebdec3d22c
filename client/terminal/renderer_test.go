package terminal

import (
	"strings"
	"testing"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	ch, _, _, _ := screen.GetContent(x, y)
	return ch
}

func rowText(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteRune(runeAt(screen, x, y))
	}
	return strings.TrimRight(b.String(), " \x00")
}

func TestRenderer_Render(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(NewRendererOptions{
		Screen:    screen,
		BestScore: func() int { return 7 },
	})

	r.Render(types.Snapshot{
		Snake:    []types.Cell{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}},
		Food:     types.Cell{X: 5, Y: 5},
		GridSize: 10,
		Score:    4,
		Phase:    types.PhaseRunning,
	})

	assert.Equal(t, "Score: 4  Best: 7", rowText(screen, hudRow, 40))

	x, y := CellPosition(types.Cell{X: 3, Y: 2})
	assert.Equal(t, headRune, runeAt(screen, x, y))
	x, y = CellPosition(types.Cell{X: 2, Y: 2})
	assert.Equal(t, bodyRune, runeAt(screen, x, y))
	x, y = CellPosition(types.Cell{X: 1, Y: 2})
	assert.Equal(t, bodyRune, runeAt(screen, x, y))
	x, y = CellPosition(types.Cell{X: 5, Y: 5})
	assert.Equal(t, foodRune, runeAt(screen, x, y))

	// border surrounds the board
	assert.Equal(t, borderRune, runeAt(screen, 0, boardTop))
	x, y = CellPosition(types.Cell{X: 9, Y: 9})
	assert.Equal(t, borderRune, runeAt(screen, x+cellWidth, y))
	assert.Equal(t, borderRune, runeAt(screen, x, y+1))
}

func TestRenderer_SetStatus(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(NewRendererOptions{Screen: screen})

	// nothing to draw before the first snapshot
	r.SetStatus("Paused")
	assert.Equal(t, "", rowText(screen, boardTop+5+2, 40))

	r.Render(types.Snapshot{
		Snake:    []types.Cell{{X: 0, Y: 0}},
		Food:     types.Cell{X: 4, Y: 4},
		GridSize: 5,
	})
	assert.Equal(t, "Score: 0", rowText(screen, hudRow, 40))
	assert.Equal(t, "Paused", rowText(screen, boardTop+5+2, 40))

	r.SetStatus("")
	assert.Equal(t, "", rowText(screen, boardTop+5+2, 40))
}
