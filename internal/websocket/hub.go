package websocket

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// AdminRoom is the room every authenticated admin joins on connect.
const AdminRoom = "admin"

// Hub tracks connected clients and fans messages out to user channels and
// rooms. All state is owned by the Run goroutine.
type Hub struct {
	clients     map[*Client]bool
	userClients map[string]map[*Client]bool
	roomClients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	mutex  sync.RWMutex
	logger *zap.Logger
}

// NewHub creates a new hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[string]map[*Client]bool),
		roomClients: make(map[string]map[*Client]bool),
		broadcast:   make(chan *Message, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

// Run processes register, unregister and broadcast operations until the
// process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.handleBroadcast(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	if client.UserID != "" {
		if _, ok := h.userClients[client.UserID]; !ok {
			h.userClients[client.UserID] = make(map[*Client]bool)
		}
		h.userClients[client.UserID][client] = true
	}
	if client.IsAdmin {
		if _, ok := h.roomClients[AdminRoom]; !ok {
			h.roomClients[AdminRoom] = make(map[*Client]bool)
		}
		h.roomClients[AdminRoom][client] = true
	}

	h.logger.Debug("websocket client registered",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID),
		zap.Bool("admin", client.IsAdmin),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if clients, ok := h.userClients[client.UserID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
	for room, clients := range h.roomClients {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.roomClients, room)
		}
	}

	h.logger.Debug("websocket client unregistered", zap.String("client_id", client.ID))
}

func (h *Hub) handleBroadcast(message *Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var targets map[*Client]bool
	switch {
	case message.Room != "":
		targets = h.roomClients[message.Room]
	case message.UserID != "":
		targets = h.userClients[message.UserID]
	default:
		targets = h.clients
	}

	for client := range targets {
		select {
		case client.send <- message:
		default:
			h.logger.Warn("websocket send buffer full, dropping",
				zap.String("client_id", client.ID))
		}
	}
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(message *Message) {
	h.broadcast <- message
}

// SendToUser sends a message to every connection of one user.
func (h *Hub) SendToUser(userID string, message *Message) {
	message.UserID = userID
	h.broadcast <- message
}

// SendToAdmins sends a message to the admin room.
func (h *Hub) SendToAdmins(message *Message) {
	message.Room = AdminRoom
	h.broadcast <- message
}

// ClientCount returns the number of active connections.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// IsUserOnline reports whether a user has at least one open connection.
func (h *Hub) IsUserOnline(userID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	clients, ok := h.userClients[userID]
	return ok && len(clients) > 0
}

// SendHeartbeat pings every connected client.
func (h *Hub) SendHeartbeat() {
	h.Broadcast(&Message{Type: MessageTypePing, Timestamp: time.Now()})
}
