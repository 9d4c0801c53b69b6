package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestHub() *Hub {
	h := NewHub(nil, nopLogger{})
	go h.Run()
	return h
}

func newTestClient(h *Hub, email string) *Client {
	return &Client{Hub: h, Email: email, Send: make(chan []byte, 8)}
}

func TestSendToUserReachesAllConnections(t *testing.T) {
	hub := newTestHub()

	c1 := newTestClient(hub, "alice@x.com")
	c2 := newTestClient(hub, "alice@x.com")
	hub.Register(c1)
	hub.Register(c2)

	hub.SendToUser("alice@x.com", []byte("hi"))

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "hi", string(msg))
		case <-time.After(time.Second):
			t.Fatal("connection never received the delivery")
		}
	}
}

func TestRoomSubscriptionFanOut(t *testing.T) {
	hub := newTestHub()

	viewer := newTestClient(hub, "bob@x.com")
	outsider := newTestClient(hub, "carol@x.com")
	hub.Register(viewer)
	hub.Register(outsider)

	hub.SubscribeRoom(viewer, "room1")
	hub.SendToRoom("room1", []byte("msg"))

	select {
	case msg := <-viewer.Send:
		assert.Equal(t, "msg", string(msg))
	case <-time.After(time.Second):
		t.Fatal("room subscriber never received the delivery")
	}

	select {
	case <-outsider.Send:
		t.Fatal("non-subscriber received a room delivery")
	default:
	}

	assert.Equal(t, []string{"bob@x.com"}, hub.RoomSubscribers("room1"))
}

func TestUnregisterReleasesAllSubscriptions(t *testing.T) {
	hub := newTestHub()

	client := newTestClient(hub, "alice@x.com")
	hub.Register(client)
	hub.SubscribeRoom(client, "room1")
	hub.SubscribeRoom(client, "room2")

	hub.unregister <- client

	// Teardown is processed by the hub goroutine.
	require.Eventually(t, func() bool {
		return len(hub.RoomSubscribers("room1")) == 0 && len(hub.RoomSubscribers("room2")) == 0
	}, time.Second, 10*time.Millisecond)

	// No further deliveries reach the closed connection.
	hub.SendToRoom("room1", []byte("late"))
	hub.SendToUser("alice@x.com", []byte("late"))

	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestUnsubscribeRoomStopsDeliveries(t *testing.T) {
	hub := newTestHub()

	client := newTestClient(hub, "dan@x.com")
	hub.Register(client)
	hub.SubscribeRoom(client, "room1")
	hub.UnsubscribeRoom(client, "room1")

	hub.SendToRoom("room1", []byte("msg"))

	select {
	case <-client.Send:
		t.Fatal("unsubscribed connection received a room delivery")
	default:
	}
}

// Deliveries run concurrently with connection teardown; the hub must never
// send on a Send channel it has already closed. Run with -race.
func TestDeliveryRacingTeardownDoesNotPanic(t *testing.T) {
	hub := newTestHub()

	for i := 0; i < 500; i++ {
		client := newTestClient(hub, "eve@x.com")
		hub.Register(client)
		hub.SubscribeRoom(client, "room1")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				hub.SendToRoom("room1", []byte("m"))
				hub.SendToUser("eve@x.com", []byte("m"))
			}
		}()
		go func() {
			defer wg.Done()
			hub.unregister <- client
		}()
		wg.Wait()
	}

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients["eve@x.com"]) == 0
	}, time.Second, 5*time.Millisecond)
}
