package events

import "time"

// Event type codes carried on the chat event bus.
const (
	TypeMessageSent     = "MESSAGE_SENT"
	TypeRoomCreated     = "ROOM_CREATED"
	TypeChatListUpdated = "CHAT_LIST_UPDATED"
	TypeUserDeleted     = "USER_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// MessageSent builds the event published after a send transaction commits.
// Seq is the store-assigned position the message took in its room.
func MessageSent(roomId, sender, recipient, text string, seq, timestamp int64) BaseEvent {
	return BaseEvent{
		Type: TypeMessageSent,
		Data: map[string]interface{}{
			"room_id":   roomId,
			"sender":    sender,
			"recipient": recipient,
			"text":      text,
			"seq":       seq,
			"timestamp": timestamp,
		},
		OccurredAt: time.Now(),
	}
}

// RoomCreated is published after both participants' summaries are written.
func RoomCreated(roomId string, participants []string) BaseEvent {
	return BaseEvent{
		Type: TypeRoomCreated,
		Data: map[string]interface{}{
			"room_id":      roomId,
			"participants": participants,
		},
		OccurredAt: time.Now(),
	}
}

// ChatListUpdated signals that one owner's summary set changed (markRead).
func ChatListUpdated(ownerEmail string) BaseEvent {
	return BaseEvent{
		Type: TypeChatListUpdated,
		Data: map[string]interface{}{
			"owner": ownerEmail,
		},
		OccurredAt: time.Now(),
	}
}
