package messages

import (
	"encoding/json"
	"fmt"
)

const (
	// MessageBufferSize represents the maximum size of an inbound message
	MessageBufferSize = 1024
)

type MessageType string

// Client message types
const (
	MessageTypeClientKey     MessageType = "key"
	MessageTypeClientStart   MessageType = "start"
	MessageTypeClientRestart MessageType = "restart"
	MessageTypeClientPause   MessageType = "pause"
	MessageTypeClientResume  MessageType = "resume"
)

// Server message types
const (
	MessageTypeServerWelcome  MessageType = "welcome"
	MessageTypeServerSnapshot MessageType = "snapshot"
	MessageTypeServerGameOver MessageType = "game_over"
	MessageTypeServerError    MessageType = "error"
)

// Message represents a generic message for serialization/deserialization
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ClientKey carries a key identifier such as "ArrowUp".
type ClientKey struct {
	Key string `json:"key"`
}

// ServerWelcome is the first message of every session.
type ServerWelcome struct {
	SessionID string `json:"sessionId"`
	GridSize  int    `json:"gridSize"`
	BestScore int    `json:"bestScore"`
}

type ServerError struct {
	Message string `json:"message"`
}

// NewMessage builds a message with payload encoded as JSON. A nil payload is omitted.
func NewMessage(messageType MessageType, payload interface{}) (*Message, error) {
	m := &Message{
		Type: messageType,
	}
	if payload == nil {
		return m, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", messageType, err)
	}
	m.Payload = b
	return m, nil
}

// DecodePayload unmarshals the payload of m into v.
func (m *Message) DecodePayload(v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("message %s has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v", m.Type, err)
	}
	return nil
}
