package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestHub() *Hub {
	return NewHub(zap.NewNop())
}

// newTestClient builds a client without a real connection. The hub never
// touches conn, only the send channel.
func newTestClient(userID string, isAdmin bool) *Client {
	return &Client{
		ID:      "client-" + userID,
		UserID:  userID,
		IsAdmin: isAdmin,
		send:    make(chan *Message, sendBufferSize),
	}
}

func TestNewHub(t *testing.T) {
	h := newTestHub()
	assert.NotNil(t, h)
	assert.Equal(t, 0, h.ClientCount())
	assert.False(t, h.IsUserOnline("nobody"))
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	h := newTestHub()
	client := newTestClient("user-1", false)

	h.registerClient(client)
	assert.Equal(t, 1, h.ClientCount())
	assert.True(t, h.IsUserOnline("user-1"))

	h.unregisterClient(client)
	assert.Equal(t, 0, h.ClientCount())
	assert.False(t, h.IsUserOnline("user-1"))

	// Unregistering twice must not panic or double-close the send channel.
	assert.NotPanics(t, func() {
		h.unregisterClient(client)
	})
}

func TestHub_SendToUser(t *testing.T) {
	h := newTestHub()
	alice := newTestClient("alice", false)
	bob := newTestClient("bob", false)
	h.registerClient(alice)
	h.registerClient(bob)

	msg := NewMessage(MessageTypeNotification, "hello")
	msg.UserID = "alice"
	h.handleBroadcast(msg)

	select {
	case got := <-alice.send:
		assert.Equal(t, MessageTypeNotification, got.Type)
	default:
		t.Fatal("alice did not receive the message")
	}
	assert.Empty(t, bob.send)
}

func TestHub_SendToAdminRoom(t *testing.T) {
	h := newTestHub()
	admin := newTestClient("admin-1", true)
	customer := newTestClient("customer-1", false)
	h.registerClient(admin)
	h.registerClient(customer)

	msg := NewMessage(MessageTypeOrderUpdate, "new order")
	msg.Room = AdminRoom
	h.handleBroadcast(msg)

	assert.Len(t, admin.send, 1)
	assert.Empty(t, customer.send)
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	h := newTestHub()
	clients := []*Client{
		newTestClient("a", false),
		newTestClient("b", false),
		newTestClient("c", true),
	}
	for _, c := range clients {
		h.registerClient(c)
	}

	h.handleBroadcast(NewMessage(MessageTypeEvent, "deploy"))

	for _, c := range clients {
		assert.Len(t, c.send, 1, "client %s", c.ID)
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := newTestHub()
	client := newTestClient("slow", false)
	h.registerClient(client)

	for i := 0; i < sendBufferSize+10; i++ {
		h.handleBroadcast(NewMessage(MessageTypeEvent, i))
	}

	assert.Len(t, client.send, sendBufferSize)
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	h := newTestHub()
	phone := newTestClient("alice", false)
	phone.ID = "phone"
	laptop := newTestClient("alice", false)
	laptop.ID = "laptop"
	h.registerClient(phone)
	h.registerClient(laptop)

	msg := NewMessage(MessageTypeNotification, "order shipped")
	msg.UserID = "alice"
	h.handleBroadcast(msg)

	assert.Len(t, phone.send, 1)
	assert.Len(t, laptop.send, 1)

	h.unregisterClient(phone)
	assert.True(t, h.IsUserOnline("alice"))
	h.unregisterClient(laptop)
	assert.False(t, h.IsUserOnline("alice"))
}

func TestHub_RunProcessesRegistrations(t *testing.T) {
	h := newTestHub()
	go h.Run()

	client := newTestClient("user-1", false)
	h.register <- client

	assert.Eventually(t, func() bool {
		return h.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	h.SendToUser("user-1", NewMessage(MessageTypeNotification, "hi"))

	assert.Eventually(t, func() bool {
		return len(client.send) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHub_SendHeartbeat_NoClients(t *testing.T) {
	h := newTestHub()
	go h.Run()

	assert.NotPanics(t, func() {
		h.SendHeartbeat()
	})
}

// ── Message helpers ──────────────────────────────────────────────────────────

func TestNewMessage(t *testing.T) {
	msg := NewMessage(MessageTypeNotification, map[string]string{"title": "hello"})
	assert.NotNil(t, msg)
	assert.Equal(t, MessageTypeNotification, msg.Type)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	first := NewMessage(MessageTypePing, nil)
	second := NewMessage(MessageTypePing, nil)
	assert.NotEqual(t, first.ID, second.ID)
}
