package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeStartSession MessageType = "start_session"
	MessageTypeAnswer       MessageType = "answer"
	MessageTypeEndSession   MessageType = "end_session"

	// Server to client messages
	MessageTypeSpot    MessageType = "spot"
	MessageTypeVerdict MessageType = "verdict"
	MessageTypeSummary MessageType = "summary"
	MessageTypeError   MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
