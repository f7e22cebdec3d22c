package types

import (
	"fmt"

	"github.com/google/uuid"
)

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhaseRunning, PhaseGameOver} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// GameState is the mutable state of one game. It is owned by the game manager
// and replaced by a fresh instance on restart.
type GameState struct {
	// ID identifies this game instance
	ID uuid.UUID
	// Snake is the snake body, head first
	Snake Snake
	// Food is the cell holding the current food
	Food Cell
	// Direction is the last applied direction
	Direction Direction
	// Pending is the buffered direction change for the next tick, nil when empty
	Pending *Direction
	// Score is the number of food eaten
	Score int
	// Tick counts successful ticks
	Tick uint64
	// Phase is the macro state of the game
	Phase Phase
}

func NewGameState() *GameState {
	return &GameState{
		ID:    uuid.New(),
		Phase: PhaseIdle,
	}
}

// Snapshot copies the parts of the state a renderer needs.
func (g *GameState) Snapshot(gridSize int) Snapshot {
	return Snapshot{
		GameID:   g.ID.String(),
		Tick:     g.Tick,
		Snake:    g.Snake.Copy(),
		Food:     g.Food,
		GridSize: gridSize,
		Score:    g.Score,
		Phase:    g.Phase,
	}
}

// Snapshot is a read-only view of a game handed to renderers after each tick.
type Snapshot struct {
	GameID   string `json:"gameId"`
	Tick     uint64 `json:"tick"`
	Snake    []Cell `json:"snake"`
	Food     Cell   `json:"food"`
	GridSize int    `json:"gridSize"`
	Score    int    `json:"score"`
	Phase    Phase  `json:"phase"`
}
