package types

import "fmt"

type GameOverCause uint8

const (
	GameOverCauseWall GameOverCause = iota
	GameOverCauseSelf
	GameOverCauseBoardFull
)

func (c GameOverCause) String() string {
	switch c {
	case GameOverCauseWall:
		return "wall"
	case GameOverCauseSelf:
		return "self"
	case GameOverCauseBoardFull:
		return "board_full"
	}
	return "unknown"
}

func (c GameOverCause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *GameOverCause) UnmarshalText(text []byte) error {
	for _, candidate := range []GameOverCause{GameOverCauseWall, GameOverCauseSelf, GameOverCauseBoardFull} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown game over cause %q", text)
}

// GameOverEvent is emitted once when a game transitions to PhaseGameOver.
type GameOverEvent struct {
	GameID     string        `json:"gameId"`
	FinalScore int           `json:"finalScore"`
	BestScore  int           `json:"bestScore"`
	NewBest    bool          `json:"newBest"`
	Cause      GameOverCause `json:"cause"`
}
