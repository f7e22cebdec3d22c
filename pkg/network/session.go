package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/input"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/messages"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/workers"
	"nhooyr.io/websocket"
)

const (
	// OutboundQueueSize is the number of messages buffered per session before new ones are dropped
	OutboundQueueSize = 64
	// WriteTimeout bounds a single websocket write
	WriteTimeout = 5 * time.Second
)

// ErrSessionClosed is returned for messages that arrive after the session was closed.
var ErrSessionClosed = errors.New("session closed")

// Encoding selects how snapshots are sent to a session.
type Encoding int

const (
	// EncodingJSON sends snapshots as JSON text frames
	EncodingJSON Encoding = iota
	// EncodingBinary sends snapshots as zstd compressed flatbuffer binary frames
	EncodingBinary
)

func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", "json":
		return EncodingJSON, nil
	case "binary":
		return EncodingBinary, nil
	}
	return 0, fmt.Errorf("unknown encoding %q", s)
}

// outboundMessage is either a control message or a snapshot, encoded by the writer.
type outboundMessage struct {
	message  *messages.Message
	snapshot *types.Snapshot
}

// Session is one player's game driven by its own timer.
type Session struct {
	ID        string
	CreatedAt time.Time

	encoding     Encoding
	manager      *game.GameManager
	loop         *game.Loop
	router       *input.Router
	stateManager state.StateManager
	outbound     queue.Queue[outboundMessage]

	// lock orders client messages against Close so a closed session never restarts its timer
	lock   sync.Mutex
	closed bool
}

type NewSessionOptions struct {
	ID                string
	Encoding          Encoding
	GridSize          int
	TickInterval      time.Duration
	FoodSpawner       *game.FoodSpawner
	BestScore         game.BestScoreTracker
	SaveBestScoreChan chan<- workers.SaveBestScoreRequest
	StateManager      state.StateManager
	// OutboundQueueSize defaults to OutboundQueueSize
	OutboundQueueSize int
}

func NewSession(opts NewSessionOptions) *Session {
	queueSize := opts.OutboundQueueSize
	if queueSize <= 0 {
		queueSize = OutboundQueueSize
	}
	s := &Session{
		ID:           opts.ID,
		CreatedAt:    time.Now(),
		encoding:     opts.Encoding,
		stateManager: opts.StateManager,
		outbound:     queue.NewInMemoryQueue[outboundMessage](queueSize),
	}

	renderers := []game.Renderer{game.RendererFunc(s.sendSnapshot)}
	if opts.StateManager != nil {
		renderers = append(renderers, state.NewRenderer(opts.StateManager, opts.ID))
	}
	s.manager = game.NewGameManager(game.NewGameManagerOptions{
		GridSize:          opts.GridSize,
		FoodSpawner:       opts.FoodSpawner,
		BestScore:         opts.BestScore,
		SaveBestScoreChan: opts.SaveBestScoreChan,
		Renderers:         renderers,
		GameOverHandlers:  []game.GameOverHandler{s.handleGameOver},
	})
	s.loop = game.NewTickerLoop(s.manager, opts.TickInterval)
	s.router = input.NewRouter(s.manager)
	return s
}

func (s *Session) Manager() *game.GameManager {
	return s.manager
}

// Welcome queues the first message of the session.
func (s *Session) Welcome() error {
	return s.sendMessage(messages.MessageTypeServerWelcome, messages.ServerWelcome{
		SessionID: s.ID,
		GridSize:  s.manager.GridSize(),
		BestScore: s.manager.BestScore(),
	})
}

// HandleMessage applies a client message to the session.
func (s *Session) HandleMessage(message *messages.Message) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	switch message.Type {
	case messages.MessageTypeClientKey:
		key := &messages.ClientKey{}
		if err := message.DecodePayload(key); err != nil {
			return err
		}
		if !s.router.Route(key.Key) {
			log.Trace("Session %s ignored key %s", s.ID, key.Key)
		}
	case messages.MessageTypeClientStart:
		if err := s.loop.Start(); err != nil {
			return fmt.Errorf("failed to start game: %w", err)
		}
		s.publishCurrent()
	case messages.MessageTypeClientRestart:
		if err := s.loop.Restart(); err != nil {
			return fmt.Errorf("failed to restart game: %w", err)
		}
		s.publishCurrent()
	case messages.MessageTypeClientPause:
		if !s.loop.Pause() {
			log.Debug("Session %s pause ignored", s.ID)
		}
	case messages.MessageTypeClientResume:
		if !s.loop.Resume() {
			log.Debug("Session %s resume ignored", s.ID)
		}
	default:
		return fmt.Errorf("unknown message type %q", message.Type)
	}
	return nil
}

// publishCurrent sends the state of a freshly started game before its first tick.
func (s *Session) publishCurrent() {
	snapshot := s.manager.Snapshot()
	s.recordSnapshot(snapshot)
	s.sendSnapshot(snapshot)
}

func (s *Session) recordSnapshot(snapshot types.Snapshot) {
	if s.stateManager == nil {
		return
	}
	if err := s.stateManager.Set(context.Background(), s.ID, snapshot); err != nil {
		log.Error("Failed to record snapshot of session %s: %v", s.ID, err)
	}
}

func (s *Session) sendSnapshot(snapshot types.Snapshot) {
	if err := s.outbound.Enqueue(outboundMessage{snapshot: &snapshot}); err != nil {
		log.Warn("Dropped snapshot %d of session %s: %v", snapshot.Tick, s.ID, err)
	}
}

func (s *Session) handleGameOver(event types.GameOverEvent) {
	s.recordSnapshot(s.manager.Snapshot())
	if err := s.sendMessage(messages.MessageTypeServerGameOver, event); err != nil {
		log.Warn("Dropped game over of session %s: %v", s.ID, err)
	}
}

func (s *Session) sendError(err error) {
	if err := s.sendMessage(messages.MessageTypeServerError, messages.ServerError{Message: err.Error()}); err != nil {
		log.Warn("Dropped error message of session %s: %v", s.ID, err)
	}
}

func (s *Session) sendMessage(messageType messages.MessageType, payload interface{}) error {
	m, err := messages.NewMessage(messageType, payload)
	if err != nil {
		return err
	}
	return s.outbound.Enqueue(outboundMessage{message: m})
}

// writeLoop drains the outbound queue into conn until ctx is done or a write fails.
func (s *Session) writeLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		out, err := s.outbound.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if err := s.write(ctx, conn, out); err != nil {
			return err
		}
	}
}

func (s *Session) write(ctx context.Context, conn *websocket.Conn, out outboundMessage) error {
	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()

	if out.message != nil {
		return WriteMessageToWS(ctx, conn, out.message)
	}
	if s.encoding == EncodingBinary {
		return WriteSnapshotToWS(ctx, conn, *out.snapshot)
	}
	m, err := messages.NewMessage(messages.MessageTypeServerSnapshot, out.snapshot)
	if err != nil {
		return err
	}
	return WriteMessageToWS(ctx, conn, m)
}

// Close stops the session's timer and discards pending messages.
func (s *Session) Close() {
	s.lock.Lock()
	s.closed = true
	s.loop.Stop()
	s.lock.Unlock()

	s.outbound.ClearQueue()
	if s.stateManager != nil {
		if err := s.stateManager.Delete(context.Background(), s.ID); err != nil && !state.IsSessionNotFound(err) {
			log.Error("Failed to forget session %s: %v", s.ID, err)
		}
	}
}
