package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	trainer   *Trainer

	// sessionID is the drill session owned by this connection, if any.
	sessionID string
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, trainer *Trainer) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
		trainer: trainer,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)

		// Abandoned sessions are discarded rather than left ticking.
		if id := c.Session(); id != "" && c.trainer != nil {
			_, _ = c.trainer.EndSession(id)
		}
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetSession associates this connection with a drill session
func (c *Connection) SetSession(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
}

// Session returns the associated session ID
func (c *Connection) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "session", c.Session())

	switch msg.Type {
	case MessageTypeStartSession:
		var data StartSessionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start session data")
			return
		}
		c.handleStartSession(data)

	case MessageTypeAnswer:
		var data AnswerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse answer data")
			return
		}
		c.handleAnswer(data)

	case MessageTypeEndSession:
		var data EndSessionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse end session data")
			return
		}
		c.handleEndSession(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func (c *Connection) handleStartSession(data StartSessionData) {
	if c.Session() != "" {
		c.sendError("session_active", "A session is already running on this connection")
		return
	}

	session, spot, err := c.trainer.StartSession(c.ctx, data)
	if err != nil {
		c.sendError("start_failed", err.Error())
		return
	}

	c.SetSession(session.ID)
	session.SetNotify(func(msg *Message) {
		_ = c.SendMessage(msg)
	})

	response, _ := NewMessage(MessageTypeSpot, spot)
	_ = c.SendMessage(response)
}

func (c *Connection) handleAnswer(data AnswerData) {
	if data.SessionID == "" {
		data.SessionID = c.Session()
	}
	if data.SessionID != c.Session() {
		c.sendError("wrong_session", "Answer does not belong to this connection's session")
		return
	}

	verdict, spot, summary, err := c.trainer.Answer(c.ctx, data)
	if err != nil {
		c.sendError("answer_failed", err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeVerdict, verdict)
	_ = c.SendMessage(response)

	switch {
	case summary != nil:
		c.SetSession("")
		response, _ = NewMessage(MessageTypeSummary, summary)
		_ = c.SendMessage(response)
	case spot != nil:
		response, _ = NewMessage(MessageTypeSpot, spot)
		_ = c.SendMessage(response)
	}
}

func (c *Connection) handleEndSession(data EndSessionData) {
	if data.SessionID == "" {
		data.SessionID = c.Session()
	}
	if data.SessionID != c.Session() {
		c.sendError("wrong_session", "Session does not belong to this connection")
		return
	}

	summary, err := c.trainer.EndSession(data.SessionID)
	if err != nil {
		c.sendError("end_failed", err.Error())
		return
	}

	c.SetSession("")
	response, _ := NewMessage(MessageTypeSummary, summary)
	_ = c.SendMessage(response)
}
