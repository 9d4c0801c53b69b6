package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/websocket"
	"matchchat-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error                                                  { return nil }

// wireEvent round-trips the payload through JSON the way the durable
// consumer decodes it off the stream.
func wireEvent(t *testing.T, evt events.BaseEvent) events.BaseEvent {
	t.Helper()
	raw, err := json.Marshal(evt.Payload())
	require.NoError(t, err)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &data))
	return events.BaseEvent{Type: evt.Type, Data: data, OccurredAt: evt.OccurredAt}
}

func readFrame(t *testing.T, ch chan []byte) dto.StreamFrame {
	t.Helper()
	select {
	case raw := <-ch:
		var frame dto.StreamFrame
		require.NoError(t, json.Unmarshal(raw, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
		return dto.StreamFrame{}
	}
}

func newDeliveryFixture(store *fakeStore) (*deliveryService, *websocket.Hub) {
	hub := websocket.NewHub(nil, silentLogger{})
	chatSvc := NewChatService(&fakeFactory{store: store}, nil)
	return NewDeliveryService(nil, hub, chatSvc, silentLogger{}).(*deliveryService), hub
}

func TestMessageSentFansOutAndMarksViewerRead(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	store.summaries[summaryKey("bob@x.com", roomId)].UnreadCount = 3

	ds, hub := newDeliveryFixture(store)

	viewer := &websocket.Client{Hub: hub, Email: "bob@x.com", Send: make(chan []byte, 8)}
	sender := &websocket.Client{Hub: hub, Email: "alice@x.com", Send: make(chan []byte, 8)}
	hub.Register(viewer)
	hub.Register(sender)
	hub.SubscribeRoom(viewer, roomId)

	evt := wireEvent(t, events.MessageSent(roomId, "alice@x.com", "bob@x.com", "hey", 7, 1234))
	require.NoError(t, ds.handleEvent(context.Background(), evt))

	// Room fan-out reaches the viewing recipient.
	frame := readFrame(t, viewer.Send)
	assert.Equal(t, dto.FrameMessage, frame.Type)
	assert.Equal(t, roomId, frame.RoomId)
	msg, ok := frame.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hey", msg["text"])
	assert.Equal(t, "alice@x.com", msg["sender"])
	assert.Equal(t, float64(7), msg["seq"])

	// Someone looking at the room consumes the message immediately.
	assert.Equal(t, 0, store.summaries[summaryKey("bob@x.com", roomId)].UnreadCount)

	// Both participants get a fresh chat-list snapshot.
	senderFrame := readFrame(t, sender.Send)
	assert.Equal(t, dto.FrameChatList, senderFrame.Type)
	viewerFrame := readFrame(t, viewer.Send)
	assert.Equal(t, dto.FrameChatList, viewerFrame.Type)
}

func TestMessageSentLeavesAbsentRecipientUnread(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")
	store.summaries[summaryKey("bob@x.com", roomId)].UnreadCount = 1

	ds, hub := newDeliveryFixture(store)

	// Bob is connected but not viewing the room.
	recipient := &websocket.Client{Hub: hub, Email: "bob@x.com", Send: make(chan []byte, 8)}
	hub.Register(recipient)

	evt := wireEvent(t, events.MessageSent(roomId, "alice@x.com", "bob@x.com", "hey", 1, 1234))
	require.NoError(t, ds.handleEvent(context.Background(), evt))

	assert.Equal(t, 1, store.summaries[summaryKey("bob@x.com", roomId)].UnreadCount)

	// Only the snapshot arrives; no room frame for a non-subscriber.
	frame := readFrame(t, recipient.Send)
	assert.Equal(t, dto.FrameChatList, frame.Type)
	select {
	case <-recipient.Send:
		t.Fatal("non-subscriber received a room delivery")
	default:
	}
}

func TestRoomCreatedPushesSnapshotsToParticipants(t *testing.T) {
	store := newFakeStore()
	roomId := seedRoom(store, "alice@x.com", "bob@x.com")

	ds, hub := newDeliveryFixture(store)

	a := &websocket.Client{Hub: hub, Email: "alice@x.com", Send: make(chan []byte, 8)}
	b := &websocket.Client{Hub: hub, Email: "bob@x.com", Send: make(chan []byte, 8)}
	hub.Register(a)
	hub.Register(b)

	evt := wireEvent(t, events.RoomCreated(roomId, []string{"alice@x.com", "bob@x.com"}))
	require.NoError(t, ds.handleEvent(context.Background(), evt))

	for _, c := range []*websocket.Client{a, b} {
		frame := readFrame(t, c.Send)
		assert.Equal(t, dto.FrameChatList, frame.Type)
	}
}

func TestChatListUpdatedPushesOwnerSnapshot(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, "alice@x.com", "bob@x.com")

	ds, hub := newDeliveryFixture(store)

	owner := &websocket.Client{Hub: hub, Email: "alice@x.com", Send: make(chan []byte, 8)}
	hub.Register(owner)

	evt := wireEvent(t, events.ChatListUpdated("alice@x.com"))
	require.NoError(t, ds.handleEvent(context.Background(), evt))

	frame := readFrame(t, owner.Send)
	assert.Equal(t, dto.FrameChatList, frame.Type)
	list, ok := frame.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}
