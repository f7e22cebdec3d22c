package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/input"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/gdamore/tcell/v2"
)

const (
	statusPaused   = "Paused. p to resume, q to quit"
	statusGameOver = "Game over (%s). Score %d. r to restart, q to quit"
	statusNewBest  = "New best score %d! r to restart, q to quit"
)

// App plays one game after another on a terminal screen.
type App struct {
	screen   tcell.Screen
	renderer *Renderer
	manager  *game.GameManager
	loop     *game.Loop
	router   *input.Router
}

type NewAppOptions struct {
	Screen       tcell.Screen
	Manager      *game.GameManager
	TickInterval time.Duration
}

func NewApp(opts NewAppOptions) *App {
	a := &App{
		screen:  opts.Screen,
		manager: opts.Manager,
		loop:    game.NewTickerLoop(opts.Manager, opts.TickInterval),
		router:  input.NewRouter(opts.Manager),
		renderer: NewRenderer(NewRendererOptions{
			Screen:    opts.Screen,
			BestScore: opts.Manager.BestScore,
		}),
	}
	opts.Manager.AddRenderer(a.renderer)
	opts.Manager.AddGameOverHandler(a.handleGameOver)
	return a
}

// Start starts the first game and draws its initial state.
func (a *App) Start() error {
	if err := a.loop.Start(); err != nil {
		return fmt.Errorf("failed to start game: %v", err)
	}
	a.renderer.Render(a.manager.Snapshot())
	return nil
}

// Run starts the first game and handles terminal events until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}
	defer a.loop.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		}
	}
}

// HandleEvent applies a terminal event and reports whether the app keeps running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Redraw()
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	}
	return true
}

func (a *App) handleKey(k tcell.Key, r rune) bool {
	action, key := TranslateKey(k, r)
	switch action {
	case ActionQuit:
		return false
	case ActionDirection:
		if !a.router.Route(key) {
			log.Trace("Ignored key %s", key)
		}
	case ActionRestart:
		a.restart()
	case ActionPause:
		a.togglePause()
	}
	return true
}

func (a *App) restart() {
	if err := a.loop.Restart(); err != nil {
		log.Trace("Ignored restart: %v", err)
		return
	}
	a.renderer.SetStatus("")
	a.renderer.Render(a.manager.Snapshot())
}

func (a *App) togglePause() {
	if !a.loop.TogglePause() {
		return
	}
	if a.loop.Paused() {
		a.renderer.SetStatus(statusPaused)
		return
	}
	a.renderer.SetStatus("")
}

func (a *App) handleGameOver(event types.GameOverEvent) {
	if event.NewBest {
		a.renderer.SetStatus(fmt.Sprintf(statusNewBest, event.FinalScore))
		return
	}
	a.renderer.SetStatus(fmt.Sprintf(statusGameOver, event.Cause, event.FinalScore))
}

// Loop exposes the scheduler handle, mostly for tests.
func (a *App) Loop() *game.Loop {
	return a.loop
}
