package game

import (
	"fmt"
	"time"

	"github.com/cbodonnell/snake/client/input"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/client/scenes"
	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// bestScore is shared by every game played in this process.
	bestScore game.BestScoreTracker
	// saveBestScoreChan receives new best scores for the save worker.
	saveBestScoreChan chan<- workers.SaveBestScoreRequest
	// seed makes food placement reproducible when set.
	seed *uint64
	// mode is the current game mode.
	mode GameMode
	// scene is the current scene.
	scene scenes.Scene

	manager  *game.GameManager
	loop     *game.Loop
	frames   *game.FrameScheduler
	interval time.Duration
	// gameOver is set by the game over handler during a frame and consumed at the end of it.
	gameOver *types.GameOverEvent
}

type GameMode int

const (
	GameModeMenu GameMode = iota
	GameModePlay
	GameModeOver
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeMenu:
		return "Menu"
	case GameModePlay:
		return "Play"
	case GameModeOver:
		return "Over"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Debug             bool
	BestScore         game.BestScoreTracker
	SaveBestScoreChan chan<- workers.SaveBestScoreRequest
	Seed              *uint64
}

func NewGame(opts NewGameOptions) (ebiten.Game, error) {
	if opts.BestScore == nil {
		return nil, fmt.Errorf("best score tracker is required")
	}
	g := &Game{
		debug:             opts.Debug,
		bestScore:         opts.BestScore,
		saveBestScoreChan: opts.SaveBestScoreChan,
		seed:              opts.Seed,
	}

	if err := g.loadMenu(); err != nil {
		return nil, fmt.Errorf("failed to load menu scene: %v", err)
	}

	return g, nil
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) loadMenu() error {
	if g.loop != nil {
		g.loop.Stop()
	}
	menu, err := scenes.NewMenuScene(scenes.MenuSceneOptions{
		OnStart: func(interval time.Duration) {
			if err := g.startGame(interval); err != nil {
				log.Error("Failed to start game: %v", err)
				if err := g.loadError("Failed to start game"); err != nil {
					log.Error("Failed to load error scene: %v", err)
				}
			}
		},
		BestScore: g.bestScore.Best(),
	})
	if err != nil {
		return fmt.Errorf("failed to create menu scene: %v", err)
	}
	if err := g.SetScene(menu); err != nil {
		return fmt.Errorf("failed to set menu scene: %v", err)
	}
	g.mode = GameModeMenu
	return nil
}

// startGame creates a fresh game at the given speed. A game abandoned from the menu is dropped.
func (g *Game) startGame(interval time.Duration) error {
	var foodSpawner *game.FoodSpawner
	if g.seed != nil {
		foodSpawner = game.NewSeededFoodSpawner(*g.seed)
	}
	g.manager = game.NewGameManager(game.NewGameManagerOptions{
		FoodSpawner:       foodSpawner,
		BestScore:         g.bestScore,
		SaveBestScoreChan: g.saveBestScoreChan,
		Renderers:         []game.Renderer{game.RendererFunc(g.render)},
		GameOverHandlers:  []game.GameOverHandler{g.handleGameOver},
	})
	g.loop, g.frames = game.NewFrameLoop(g.manager, interval)
	g.interval = interval
	g.gameOver = nil

	if err := g.loop.Start(); err != nil {
		return fmt.Errorf("failed to start loop: %v", err)
	}
	log.Debug("Started game at %s per tick", interval)
	return g.loadGame()
}

// restartGame replays the finished game at the same speed.
func (g *Game) restartGame() error {
	g.gameOver = nil
	if err := g.loop.Restart(); err != nil {
		return fmt.Errorf("failed to restart loop: %v", err)
	}
	return g.loadGame()
}

func (g *Game) loadGame() error {
	gameScene, err := scenes.NewGameScene(scenes.GameSceneOptions{
		Manager: g.manager,
		Loop:    g.loop,
		Frames:  g.frames,
	})
	if err != nil {
		return fmt.Errorf("failed to create game scene: %v", err)
	}
	if err := g.SetScene(gameScene); err != nil {
		return fmt.Errorf("failed to set game scene: %v", err)
	}
	g.mode = GameModePlay
	return nil
}

func (g *Game) loadGameOver(event types.GameOverEvent) error {
	gameOver, err := scenes.NewGameOverScene(g.scene, event)
	if err != nil {
		return fmt.Errorf("failed to create game over scene: %v", err)
	}
	if err := g.SetScene(gameOver); err != nil {
		return fmt.Errorf("failed to set game over scene: %v", err)
	}
	g.mode = GameModeOver
	return nil
}

func (g *Game) loadError(msg string) error {
	if g.loop != nil {
		g.loop.Stop()
	}
	errorScene, err := scenes.NewErrorScene(msg)
	if err != nil {
		return fmt.Errorf("failed to create error scene: %v", err)
	}
	if err := g.SetScene(errorScene); err != nil {
		return fmt.Errorf("failed to set error scene: %v", err)
	}
	g.mode = GameModeError
	return nil
}

// render forwards snapshots to the current scene when it draws them.
func (g *Game) render(snapshot types.Snapshot) {
	if renderer, ok := g.scene.(game.Renderer); ok {
		renderer.Render(snapshot)
	}
}

func (g *Game) handleGameOver(event types.GameOverEvent) {
	g.gameOver = &event
}

func (g *Game) Update() error {
	// Handle input
	if err := g.handleInput(); err != nil {
		return fmt.Errorf("failed to handle input: %v", err)
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	if g.gameOver != nil && g.mode == GameModePlay {
		event := *g.gameOver
		g.gameOver = nil
		if err := g.loadGameOver(event); err != nil {
			return fmt.Errorf("failed to load game over scene: %v", err)
		}
	}

	return nil
}

func (g *Game) handleInput() error {
	switch g.mode {
	case GameModePlay:
		if input.IsNegativeJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
		}
	case GameModeOver:
		if input.IsNegativeJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
			break
		}
		if input.IsPositiveJustPressed() {
			if err := g.restartGame(); err != nil {
				log.Error("Failed to restart game: %v", err)
				if err := g.loadError("Failed to restart game"); err != nil {
					return fmt.Errorf("failed to load error scene: %v", err)
				}
			}
		}
	case GameModeError:
		if input.IsNegativeJustPressed() || input.IsPositiveJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n   Mode: %s", g.mode))

	if g.manager == nil {
		return
	}

	snapshot := g.manager.Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n\n   Tick: %d (%s)", snapshot.Tick, g.interval))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n\n\n   Length: %d", len(snapshot.Snake)))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return objects.ScreenWidth, objects.ScreenHeight
}
