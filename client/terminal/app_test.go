package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, interval time.Duration) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := newTestScreen(t)
	gm := game.NewGameManager(game.NewGameManagerOptions{
		GridSize:    10,
		FoodSpawner: game.NewSeededFoodSpawner(1),
	})
	app := NewApp(NewAppOptions{
		Screen:       screen,
		Manager:      gm,
		TickInterval: interval,
	})
	t.Cleanup(app.Loop().Stop)
	return app, screen
}

func TestApp_startDrawsInitialState(t *testing.T) {
	app, screen := newTestApp(t, time.Hour)
	require.NoError(t, app.Start())

	x, y := CellPosition(types.Cell{X: 5, Y: 5})
	assert.Equal(t, headRune, runeAt(screen, x, y))
	assert.Equal(t, "Score: 0  Best: 0", rowText(screen, hudRow, 40))

	assert.Error(t, app.Start())
}

func TestApp_handleKey(t *testing.T) {
	app, screen := newTestApp(t, time.Hour)
	require.NoError(t, app.Start())

	assert.True(t, app.handleKey(tcell.KeyUp, 0))
	assert.True(t, app.handleKey(tcell.KeyRune, 'x'))

	assert.True(t, app.handleKey(tcell.KeyRune, 'p'))
	assert.True(t, app.Loop().Paused())
	assert.Equal(t, statusPaused, rowText(screen, boardTop+10+2, 60))

	assert.True(t, app.handleKey(tcell.KeyRune, 'p'))
	assert.False(t, app.Loop().Paused())
	assert.Equal(t, "", rowText(screen, boardTop+10+2, 60))

	// restart is ignored while running
	id := app.manager.Snapshot().GameID
	assert.True(t, app.handleKey(tcell.KeyRune, 'r'))
	assert.Equal(t, id, app.manager.Snapshot().GameID)

	assert.False(t, app.handleKey(tcell.KeyRune, 'q'))
	assert.False(t, app.handleKey(tcell.KeyEscape, 0))
}

func TestApp_gameOverAndRestart(t *testing.T) {
	app, screen := newTestApp(t, time.Millisecond)
	require.NoError(t, app.Start())

	// heading right from the middle the snake hits the wall after a few ticks
	require.Eventually(t, func() bool {
		return app.manager.Phase() == types.PhaseGameOver
	}, 5*time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		return rowText(screen, boardTop+10+2, 60) != ""
	}, time.Second, time.Millisecond)

	id := app.manager.Snapshot().GameID
	app.Loop().Stop()
	assert.True(t, app.handleKey(tcell.KeyRune, 'r'))
	assert.NotEqual(t, id, app.manager.Snapshot().GameID)
	assert.Equal(t, types.PhaseRunning, app.manager.Phase())
}

func TestApp_runStopsOnContextCancel(t *testing.T) {
	app, _ := newTestApp(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- app.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return app.manager.Phase() == types.PhaseRunning
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
