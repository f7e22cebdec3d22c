package network

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/messages"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type testServer struct {
	url          string
	sessions     *SessionManager
	stateManager *state.InMemoryStateManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	seed := uint64(9)
	stateManager := state.NewInMemoryStateManager()
	sessions := NewSessionManager(NewSessionManagerOptions{
		TickInterval:      5 * time.Millisecond,
		Seed:              &seed,
		BestScore:         scores.NewTracker(7),
		SaveBestScoreChan: make(chan workers.SaveBestScoreRequest, 1),
		StateManager:      stateManager,
	})
	nm := NewNetworkManager(NewNetworkManagerOptions{SessionManager: sessions})
	server := httptest.NewServer(nm.Handler(ctx))
	t.Cleanup(server.Close)

	return &testServer{
		url:          "ws" + strings.TrimPrefix(server.URL, "http") + "/ws",
		sessions:     sessions,
		stateManager: stateManager,
	}
}

func dial(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, messageType messages.MessageType, payload interface{}) {
	t.Helper()
	m, err := messages.NewMessage(messageType, payload)
	require.NoError(t, err)
	require.NoError(t, WriteMessageToWS(ctx, conn, m))
}

func read(t *testing.T, ctx context.Context, conn *websocket.Conn) *messages.Message {
	t.Helper()
	m, err := ReadMessageFromWS(ctx, conn)
	require.NoError(t, err)
	return m
}

func TestSession_JSON(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server := newTestServer(t)
	conn := dial(t, ctx, server.url)

	welcome := &messages.ServerWelcome{}
	m := read(t, ctx, conn)
	require.Equal(t, messages.MessageTypeServerWelcome, m.Type)
	require.NoError(t, m.DecodePayload(welcome))
	assert.NotEmpty(t, welcome.SessionID)
	assert.Equal(t, 20, welcome.GridSize)
	assert.Equal(t, 7, welcome.BestScore)
	assert.Equal(t, 1, server.sessions.Count())

	send(t, ctx, conn, "bogus", nil)
	m = read(t, ctx, conn)
	assert.Equal(t, messages.MessageTypeServerError, m.Type)

	send(t, ctx, conn, messages.MessageTypeClientStart, nil)
	m = read(t, ctx, conn)
	require.Equal(t, messages.MessageTypeServerSnapshot, m.Type)
	snapshot := types.Snapshot{}
	require.NoError(t, m.DecodePayload(&snapshot))
	assert.Equal(t, types.PhaseRunning, snapshot.Phase)
	assert.Equal(t, []types.Cell{{X: 10, Y: 10}}, snapshot.Snake)

	send(t, ctx, conn, messages.MessageTypeClientKey, messages.ClientKey{Key: "ArrowUp"})

	// the snake runs into a wall on its own
	var gameOver types.GameOverEvent
	for {
		m = read(t, ctx, conn)
		if m.Type == messages.MessageTypeServerGameOver {
			require.NoError(t, m.DecodePayload(&gameOver))
			break
		}
		require.Equal(t, messages.MessageTypeServerSnapshot, m.Type)
	}
	assert.Equal(t, types.GameOverCauseWall, gameOver.Cause)
	assert.Equal(t, snapshot.GameID, gameOver.GameID)
	assert.GreaterOrEqual(t, gameOver.BestScore, 7)

	recorded, err := server.stateManager.Get(ctx, welcome.SessionID)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseGameOver, recorded.Phase)

	send(t, ctx, conn, messages.MessageTypeClientRestart, nil)
	m = read(t, ctx, conn)
	require.Equal(t, messages.MessageTypeServerSnapshot, m.Type)
	require.NoError(t, m.DecodePayload(&snapshot))
	assert.NotEqual(t, gameOver.GameID, snapshot.GameID)
	assert.Equal(t, uint64(0), snapshot.Tick)

	conn.Close(websocket.StatusNormalClosure, "bye")
	require.Eventually(t, func() bool { return server.sessions.Count() == 0 }, 5*time.Second, 5*time.Millisecond)
	_, err = server.stateManager.Get(ctx, welcome.SessionID)
	assert.True(t, state.IsSessionNotFound(err))
}

func TestSession_binary(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server := newTestServer(t)
	conn := dial(t, ctx, server.url+"?encoding=binary")

	m := read(t, ctx, conn)
	require.Equal(t, messages.MessageTypeServerWelcome, m.Type)

	send(t, ctx, conn, messages.MessageTypeClientStart, nil)
	messageType, b, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageBinary, messageType)

	snapshot, err := messages.DeserializeSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseRunning, snapshot.Phase)
	assert.Equal(t, []types.Cell{{X: 10, Y: 10}}, snapshot.Snake)
	assert.Equal(t, 20, snapshot.GridSize)
}

func TestSession_unknownEncoding(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server := newTestServer(t)
	conn := dial(t, ctx, server.url+"?encoding=xml")

	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
	assert.Equal(t, 0, server.sessions.Count())
}

func TestSession_HandleMessage(t *testing.T) {
	session := NewSession(NewSessionOptions{ID: "s", TickInterval: time.Hour})
	defer session.Close()

	assert.Error(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientRestart + "x"}))
	assert.Error(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientKey}))

	require.NoError(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientStart}))
	assert.Error(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientStart}))
	assert.Error(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientRestart}))
	assert.Equal(t, types.PhaseRunning, session.Manager().Phase())

	key, err := messages.NewMessage(messages.MessageTypeClientKey, messages.ClientKey{Key: "ArrowDown"})
	require.NoError(t, err)
	require.NoError(t, session.HandleMessage(key))

	require.NoError(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientPause}))
	require.NoError(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientResume}))
}

func TestSession_outboundQueueFull(t *testing.T) {
	session := NewSession(NewSessionOptions{ID: "s", TickInterval: time.Hour, OutboundQueueSize: 1})
	defer session.Close()

	require.NoError(t, session.Welcome())
	assert.Error(t, session.Welcome())

	// snapshots are dropped without blocking
	require.NoError(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientStart}))
	assert.Equal(t, 1, session.outbound.Size())
}

func TestParseEncoding(t *testing.T) {
	for input, want := range map[string]Encoding{"": EncodingJSON, "json": EncodingJSON, "binary": EncodingBinary} {
		got, err := ParseEncoding(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseEncoding("xml")
	assert.Error(t, err)
}
