package network

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/google/uuid"
)

// ErrSessionManagerClosed is returned by Connect once DisconnectAll has run.
var ErrSessionManagerClosed = errors.New("session manager closed")

// SessionManager tracks connected sessions. All sessions share one best score tracker
// and one save channel.
type SessionManager struct {
	sessions     map[string]*Session
	sessionsLock sync.RWMutex
	closed       bool

	gridSize          int
	tickInterval      time.Duration
	seed              *uint64
	bestScore         game.BestScoreTracker
	saveBestScoreChan chan<- workers.SaveBestScoreRequest
	stateManager      state.StateManager
	outboundQueueSize int
}

type NewSessionManagerOptions struct {
	GridSize     int
	TickInterval time.Duration
	// Seed makes food placement reproducible when set
	Seed              *uint64
	BestScore         game.BestScoreTracker
	SaveBestScoreChan chan<- workers.SaveBestScoreRequest
	StateManager      state.StateManager
	OutboundQueueSize int
}

func NewSessionManager(opts NewSessionManagerOptions) *SessionManager {
	return &SessionManager{
		sessions:          make(map[string]*Session),
		gridSize:          opts.GridSize,
		tickInterval:      opts.TickInterval,
		seed:              opts.Seed,
		bestScore:         opts.BestScore,
		saveBestScoreChan: opts.SaveBestScoreChan,
		stateManager:      opts.StateManager,
		outboundQueueSize: opts.OutboundQueueSize,
	}
}

// Connect creates and registers a new session.
func (sm *SessionManager) Connect(encoding Encoding) (*Session, error) {
	var foodSpawner *game.FoodSpawner
	if sm.seed != nil {
		foodSpawner = game.NewSeededFoodSpawner(*sm.seed)
	}
	session := NewSession(NewSessionOptions{
		ID:                uuid.NewString(),
		Encoding:          encoding,
		GridSize:          sm.gridSize,
		TickInterval:      sm.tickInterval,
		FoodSpawner:       foodSpawner,
		BestScore:         sm.bestScore,
		SaveBestScoreChan: sm.saveBestScoreChan,
		StateManager:      sm.stateManager,
		OutboundQueueSize: sm.outboundQueueSize,
	})

	sm.sessionsLock.Lock()
	if sm.closed {
		sm.sessionsLock.Unlock()
		return nil, ErrSessionManagerClosed
	}
	sm.sessions[session.ID] = session
	sm.sessionsLock.Unlock()

	log.Info("Session %s connected", session.ID)
	return session, nil
}

// Disconnect stops and removes a session.
func (sm *SessionManager) Disconnect(sessionID string) {
	sm.sessionsLock.Lock()
	session, ok := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	sm.sessionsLock.Unlock()

	if !ok {
		return
	}
	session.Close()
	log.Info("Session %s disconnected", sessionID)
}

func (sm *SessionManager) Get(sessionID string) (*Session, bool) {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	session, ok := sm.sessions[sessionID]
	return session, ok
}

// IDs returns the IDs of all connected sessions, oldest first.
func (sm *SessionManager) IDs() []string {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()

	sessions := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}
	return ids
}

func (sm *SessionManager) Count() int {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return len(sm.sessions)
}

// DisconnectAll stops every session on shutdown. No session can connect afterwards.
func (sm *SessionManager) DisconnectAll() {
	sm.sessionsLock.Lock()
	sm.closed = true
	sm.sessionsLock.Unlock()

	for _, id := range sm.IDs() {
		sm.Disconnect(id)
	}
}
