package network

import (
	"context"
	"errors"
	"net/http"

	"github.com/cbodonnell/snake/pkg/log"
	"nhooyr.io/websocket"
)

type NetworkManager struct {
	SessionManager *SessionManager
	WSServer       *WSServer
}

type NewNetworkManagerOptions struct {
	SessionManager *SessionManager
	WSPort         int
	WSServerTLS    *TLSConfig
}

func NewNetworkManager(options NewNetworkManagerOptions) *NetworkManager {
	return &NetworkManager{
		SessionManager: options.SessionManager,
		WSServer: NewWSServer(NewWSServerOptions{
			Port: options.WSPort,
			TLS:  options.WSServerTLS,
		}),
	}
}

// Start serves websocket sessions until ctx is done.
func (n *NetworkManager) Start(ctx context.Context) {
	n.WSServer.Start(ctx, n.handleConnection)
	n.SessionManager.DisconnectAll()
}

// Handler exposes the websocket endpoint, for tests and embedding.
func (n *NetworkManager) Handler(ctx context.Context) http.Handler {
	return n.WSServer.Handler(ctx, n.handleConnection)
}

// handleConnection runs one session: a writer goroutine drains its outbound queue
// while this goroutine applies client messages in order.
func (n *NetworkManager) handleConnection(ctx context.Context, conn *websocket.Conn, r *http.Request) {
	encoding, err := ParseEncoding(r.URL.Query().Get("encoding"))
	if err != nil {
		log.Warn("Rejected connection from %s: %v", r.RemoteAddr, err)
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	session, err := n.SessionManager.Connect(encoding)
	if err != nil {
		log.Warn("Rejected connection from %s: %v", r.RemoteAddr, err)
		conn.Close(websocket.StatusGoingAway, err.Error())
		return
	}
	defer func() {
		cancel()
		n.SessionManager.Disconnect(session.ID)
		conn.Close(websocket.StatusNormalClosure, "session closed")
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		if err := session.writeLoop(ctx, conn); err != nil && !isConnectionClosed(err) {
			log.Error("Failed to write to session %s: %v", session.ID, err)
		}
	}()

	if err := session.Welcome(); err != nil {
		log.Error("Failed to welcome session %s: %v", session.ID, err)
		return
	}

	for {
		message, err := ReadMessageFromWS(ctx, conn)
		if err != nil {
			if errors.Is(err, ErrInvalidMessage) {
				log.Warn("Session %s sent an invalid message: %v", session.ID, err)
				session.sendError(err)
				continue
			}
			if !isConnectionClosed(err) {
				log.Debug("Error reading from session %s: %v", session.ID, err)
			}
			log.Trace("Connection closed for session %s", session.ID)
			break
		}

		if err := session.HandleMessage(message); err != nil {
			log.Debug("Session %s: %v", session.ID, err)
			session.sendError(err)
		}
	}

	cancel()
	<-writerDone
}
