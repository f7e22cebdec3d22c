package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/snake/pkg/game/types"
)

// ErrSessionNotFound is returned when no snapshot was recorded for a session.
var ErrSessionNotFound = errors.New("session not found")

// SessionSummary describes the latest known state of a session.
type SessionSummary struct {
	SessionID string      `json:"sessionId"`
	GameID    string      `json:"gameId"`
	Phase     types.Phase `json:"phase"`
	Score     int         `json:"score"`
	Length    int         `json:"length"`
	Tick      uint64      `json:"tick"`
}

// StateManager provides shared access to the latest snapshot of every session.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the latest snapshot of a session.
	Get(ctx context.Context, sessionID string) (types.Snapshot, error)
	// Set records the latest snapshot of a session.
	Set(ctx context.Context, sessionID string, snapshot types.Snapshot) error
	// Delete forgets a session.
	Delete(ctx context.Context, sessionID string) error
	// List returns summaries of all sessions ordered by session ID.
	List(ctx context.Context) ([]SessionSummary, error)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func sessionNotFound(sessionID string) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
}
