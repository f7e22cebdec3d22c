package network

import (
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/messages"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager() *SessionManager {
	return NewSessionManager(NewSessionManagerOptions{
		TickInterval: time.Hour,
		BestScore:    scores.NewTracker(0),
	})
}

func TestSessionManager_connectAfterDisconnectAll(t *testing.T) {
	sm := newTestSessionManager()

	session, err := sm.Connect(EncodingJSON)
	require.NoError(t, err)
	require.NoError(t, session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientStart}))
	assert.Equal(t, 1, sm.Count())

	sm.DisconnectAll()
	assert.Equal(t, 0, sm.Count())

	_, err = sm.Connect(EncodingJSON)
	assert.ErrorIs(t, err, ErrSessionManagerClosed)
	assert.Equal(t, 0, sm.Count())
}

func TestSession_messagesAfterCloseAreRejected(t *testing.T) {
	sm := newTestSessionManager()
	session, err := sm.Connect(EncodingJSON)
	require.NoError(t, err)

	sm.Disconnect(session.ID)

	err = session.HandleMessage(&messages.Message{Type: messages.MessageTypeClientStart})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, types.PhaseIdle, session.Manager().Phase())
	assert.False(t, session.loop.Paused())
}
