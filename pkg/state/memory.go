package state

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
)

type InMemoryStateManager struct {
	lock      sync.RWMutex
	snapshots map[string]types.Snapshot
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		snapshots: make(map[string]types.Snapshot),
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context, sessionID string) (types.Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	snapshot, ok := m.snapshots[sessionID]
	if !ok {
		return types.Snapshot{}, sessionNotFound(sessionID)
	}
	snapshot.Snake = append([]types.Cell(nil), snapshot.Snake...)
	return snapshot, nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, sessionID string, snapshot types.Snapshot) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is empty")
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	snapshot.Snake = append([]types.Cell(nil), snapshot.Snake...)
	m.snapshots[sessionID] = snapshot
	return nil
}

func (m *InMemoryStateManager) Delete(ctx context.Context, sessionID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.snapshots[sessionID]; !ok {
		return sessionNotFound(sessionID)
	}
	delete(m.snapshots, sessionID)
	return nil
}

func (m *InMemoryStateManager) List(ctx context.Context) ([]SessionSummary, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	summaries := make([]SessionSummary, 0, len(m.snapshots))
	for sessionID, snapshot := range m.snapshots {
		summaries = append(summaries, SessionSummary{
			SessionID: sessionID,
			GameID:    snapshot.GameID,
			Phase:     snapshot.Phase,
			Score:     snapshot.Score,
			Length:    len(snapshot.Snake),
			Tick:      snapshot.Tick,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SessionID < summaries[j].SessionID
	})
	return summaries, nil
}

// NewRenderer returns a renderer recording every snapshot of a session in m.
func NewRenderer(m StateManager, sessionID string) game.Renderer {
	return game.RendererFunc(func(snapshot types.Snapshot) {
		if err := m.Set(context.Background(), sessionID, snapshot); err != nil {
			log.Error("Failed to record snapshot of session %s: %v", sessionID, err)
		}
	})
}
