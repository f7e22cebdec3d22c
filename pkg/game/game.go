package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/workers"
)

// ErrPhaseMismatch is returned when an operation is not valid in the current phase.
// The state is left untouched.
var ErrPhaseMismatch = errors.New("phase mismatch")

// Renderer receives a snapshot after every successful tick.
// Implementations must not block for long since they run on the tick path.
type Renderer interface {
	Render(snapshot types.Snapshot)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(snapshot types.Snapshot)

func (f RendererFunc) Render(snapshot types.Snapshot) {
	f(snapshot)
}

// GameOverHandler is called once per game over, after the best score was updated.
type GameOverHandler func(event types.GameOverEvent)

// BestScoreTracker keeps the process wide best score.
type BestScoreTracker interface {
	Best() int
	Submit(score int) bool
}

// GameManager owns the state of a single game and advances it one tick at a time.
// It does not own a timer: see Loop and the schedulers.
type GameManager struct {
	lock              sync.Mutex
	gridSize          int
	foodSpawner       *FoodSpawner
	bestScore         BestScoreTracker
	saveBestScoreChan chan<- workers.SaveBestScoreRequest
	renderers         []Renderer
	gameOverHandlers  []GameOverHandler
	gameState         *types.GameState
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	// GridSize defaults to constants.GridSize
	GridSize int
	// FoodSpawner defaults to a time seeded spawner
	FoodSpawner *FoodSpawner
	// BestScore defaults to a tracker starting at 0
	BestScore BestScoreTracker
	// SaveBestScoreChan receives a request whenever a game ends with a new best score.
	// Sends never block: a full channel drops the request.
	SaveBestScoreChan chan<- workers.SaveBestScoreRequest
	Renderers         []Renderer
	GameOverHandlers  []GameOverHandler
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	gridSize := opts.GridSize
	if gridSize < 2 {
		gridSize = constants.GridSize
	}
	foodSpawner := opts.FoodSpawner
	if foodSpawner == nil {
		foodSpawner = NewSeededFoodSpawner(timeSeed())
	}
	var bestScore BestScoreTracker = opts.BestScore
	if bestScore == nil {
		bestScore = scores.NewTracker(0)
	}
	return &GameManager{
		gridSize:          gridSize,
		foodSpawner:       foodSpawner,
		bestScore:         bestScore,
		saveBestScoreChan: opts.SaveBestScoreChan,
		renderers:         append([]Renderer(nil), opts.Renderers...),
		gameOverHandlers:  append([]GameOverHandler(nil), opts.GameOverHandlers...),
		gameState:         types.NewGameState(),
	}
}

// AddRenderer registers a renderer for subsequent ticks.
func (gm *GameManager) AddRenderer(renderer Renderer) {
	gm.lock.Lock()
	defer gm.lock.Unlock()
	gm.renderers = append(gm.renderers, renderer)
}

// AddGameOverHandler registers a handler for subsequent game overs.
func (gm *GameManager) AddGameOverHandler(handler GameOverHandler) {
	gm.lock.Lock()
	defer gm.lock.Unlock()
	gm.gameOverHandlers = append(gm.gameOverHandlers, handler)
}

// Start begins play from PhaseIdle.
func (gm *GameManager) Start() error {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	if gm.gameState.Phase != types.PhaseIdle {
		return fmt.Errorf("%w: cannot start a game in phase %s", ErrPhaseMismatch, gm.gameState.Phase)
	}
	gm.gameState = gm.newRunningState()
	log.Debug("Game %s started", gm.gameState.ID)
	return nil
}

// Restart replaces a finished or idle game with a fresh running one.
func (gm *GameManager) Restart() error {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	if gm.gameState.Phase == types.PhaseRunning {
		return fmt.Errorf("%w: cannot restart a running game", ErrPhaseMismatch)
	}
	previous := gm.gameState.ID
	gm.gameState = gm.newRunningState()
	log.Debug("Game %s restarted as %s", previous, gm.gameState.ID)
	return nil
}

// newRunningState builds the initial state of a game: a single cell snake
// in the middle of the board heading right, and food somewhere else.
func (gm *GameManager) newRunningState() *types.GameState {
	state := types.NewGameState()
	state.Snake = types.Snake{{X: gm.gridSize / 2, Y: gm.gridSize / 2}}
	state.Direction = types.DirectionRight
	// a grid of at least 2x2 always has a free cell next to a one cell snake
	state.Food, _ = gm.foodSpawner.Spawn(state.Snake.Occupied(), gm.gridSize)
	state.Phase = types.PhaseRunning
	return state
}

// SetDirection buffers a direction change for the next tick and reports whether it was accepted.
// The change is rejected outside PhaseRunning, when it reverses or repeats the applied
// direction, or when another change is already pending for this tick.
func (gm *GameManager) SetDirection(direction types.Direction) bool {
	if !direction.Valid() {
		return false
	}

	gm.lock.Lock()
	defer gm.lock.Unlock()

	state := gm.gameState
	if state.Phase != types.PhaseRunning {
		return false
	}
	if direction == state.Direction || direction == state.Direction.Opposite() {
		log.Trace("Game %s rejected direction %s while heading %s", state.ID, direction, state.Direction)
		return false
	}
	if state.Pending != nil {
		log.Trace("Game %s rejected direction %s, %s already pending", state.ID, direction, *state.Pending)
		return false
	}
	state.Pending = &direction
	return true
}

// Tick advances the running game by one cell.
func (gm *GameManager) Tick() error {
	gm.lock.Lock()

	state := gm.gameState
	if state.Phase != types.PhaseRunning {
		gm.lock.Unlock()
		return fmt.Errorf("%w: cannot tick a game in phase %s", ErrPhaseMismatch, state.Phase)
	}

	if state.Pending != nil {
		state.Direction = *state.Pending
		state.Pending = nil
	}

	head := types.AdvanceHead(state.Snake, state.Direction)
	if HitsWall(head, gm.gridSize) {
		gm.endGame(types.GameOverCauseWall)
		return nil
	}

	eating := head == state.Food
	if HitsSelf(head, collisionBody(state.Snake, eating)) {
		gm.endGame(types.GameOverCauseSelf)
		return nil
	}

	if eating {
		occupied := state.Snake.Occupied()
		occupied[head] = struct{}{}
		food, ok := gm.foodSpawner.Spawn(occupied, gm.gridSize)
		state.Score++
		if !ok {
			// the last free cell was eaten: the point counts, snake and food are left as they were
			gm.endGame(types.GameOverCauseBoardFull)
			return nil
		}
		state.Snake = types.ApplyEat(state.Snake, head)
		state.Food = food
	} else {
		state.Snake = types.ApplyMove(state.Snake, head)
	}
	state.Tick++

	snapshot := state.Snapshot(gm.gridSize)
	renderers := gm.renderers
	gm.lock.Unlock()

	for _, renderer := range renderers {
		renderer.Render(snapshot)
	}
	return nil
}

// endGame moves the game to PhaseGameOver, updates the best score and notifies handlers.
// It must be called with the lock held and releases it before running handlers.
func (gm *GameManager) endGame(cause types.GameOverCause) {
	state := gm.gameState
	state.Phase = types.PhaseGameOver
	state.Pending = nil

	newBest := gm.bestScore.Submit(state.Score)
	if newBest && gm.saveBestScoreChan != nil {
		saveRequest := workers.SaveBestScoreRequest{
			GameID: state.ID.String(),
			Score:  state.Score,
		}
		select {
		case gm.saveBestScoreChan <- saveRequest:
		default:
			log.Warn("Dropped best score save request for game %s: channel full", state.ID)
		}
	}

	event := types.GameOverEvent{
		GameID:     state.ID.String(),
		FinalScore: state.Score,
		BestScore:  gm.bestScore.Best(),
		NewBest:    newBest,
		Cause:      cause,
	}
	handlers := gm.gameOverHandlers
	gm.lock.Unlock()

	log.Info("Game %s over by %s with score %d (best %d)", event.GameID, cause, event.FinalScore, event.BestScore)
	for _, handler := range handlers {
		handler(event)
	}
}

func (gm *GameManager) Phase() types.Phase {
	gm.lock.Lock()
	defer gm.lock.Unlock()
	return gm.gameState.Phase
}

func (gm *GameManager) Score() int {
	gm.lock.Lock()
	defer gm.lock.Unlock()
	return gm.gameState.Score
}

func (gm *GameManager) BestScore() int {
	return gm.bestScore.Best()
}

func (gm *GameManager) GridSize() int {
	return gm.gridSize
}

// Snapshot returns the current state, also outside of ticks.
func (gm *GameManager) Snapshot() types.Snapshot {
	gm.lock.Lock()
	defer gm.lock.Unlock()
	return gm.gameState.Snapshot(gm.gridSize)
}
