package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/messages"
	"github.com/gorilla/mux"
	"nhooyr.io/websocket"
)

// ErrInvalidMessage is returned for a frame that could not be decoded.
// The connection stays usable.
var ErrInvalidMessage = errors.New("invalid message")

// WSServer represents a WebSocket server.
type WSServer struct {
	port int
	tls  *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port int
	TLS  *TLSConfig
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port: opts.Port,
		tls:  opts.TLS,
	}
}

// ConnectionHandler serves one accepted connection until it closes.
type ConnectionHandler func(ctx context.Context, conn *websocket.Conn, r *http.Request)

// Handler upgrades requests on /ws and hands the connections to handler.
func (s *WSServer) Handler(ctx context.Context, handler ConnectionHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		conn.SetReadLimit(messages.MessageBufferSize)
		log.Debug("New WebSocket connection from %s", r.RemoteAddr)
		handler(ctx, conn, r)
	}).Methods(http.MethodGet)
	return r
}

// Start starts the WebSocket server and blocks until ctx is done or the server fails.
func (s *WSServer) Start(ctx context.Context, handler ConnectionHandler) {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: s.Handler(ctx, handler)}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// WriteMessageToWS writes a Message to a WebSocket connection as a text frame
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// WriteSnapshotToWS writes a snapshot to a WebSocket connection as a binary frame
func WriteSnapshotToWS(ctx context.Context, conn *websocket.Conn, snapshot types.Snapshot) error {
	b, err := messages.SerializeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write snapshot to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	messageType, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if messageType != websocket.MessageText {
		return nil, fmt.Errorf("%w: unexpected binary frame", ErrInvalidMessage)
	}

	msg, err := messages.DeserializeMessage(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	return msg, nil
}

// isConnectionClosed reports whether err is the normal end of a connection.
func isConnectionClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, context.Canceled)
}
