package websocket

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// MessageType labels a websocket frame.
type MessageType string

const (
	MessageTypeNotification MessageType = "notification"
	MessageTypeOrderUpdate  MessageType = "order_update"
	MessageTypePing         MessageType = "ping"
	MessageTypePong         MessageType = "pong"
	MessageTypeEvent        MessageType = "event"
)

// Message is one frame pushed to clients.
type Message struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Room      string      `json:"room,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage creates a message with a fresh id and timestamp.
func NewMessage(msgType MessageType, data any) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Client is one websocket connection.
type Client struct {
	ID      string
	UserID  string
	IsAdmin bool

	hub    *Hub
	conn   *websocket.Conn
	send   chan *Message
	logger *zap.Logger
}

// NewClient wraps an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID string, isAdmin bool, logger *zap.Logger) *Client {
	return &Client{
		ID:      uuid.New().String(),
		UserID:  userID,
		IsAdmin: isAdmin,
		hub:     hub,
		conn:    conn,
		send:    make(chan *Message, sendBufferSize),
		logger:  logger,
	}
}

// ReadPump drains inbound frames. The push channel is one-directional;
// clients only send pings, anything else is dropped.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error",
					zap.String("client_id", c.ID), zap.Error(err))
			}
			return
		}
		if message.Type == MessageTypePing {
			c.Send(&Message{Type: MessageTypePong, Timestamp: time.Now()})
		}
	}
}

// WritePump writes queued messages and keepalive pings to the peer.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Warn("websocket write error",
					zap.String("client_id", c.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues a message, dropping it if the buffer is full.
func (c *Client) Send(message *Message) {
	select {
	case c.send <- message:
	default:
		c.logger.Warn("websocket send buffer full, dropping",
			zap.String("client_id", c.ID))
	}
}
