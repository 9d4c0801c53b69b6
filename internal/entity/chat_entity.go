package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSummary is one owner's cached view of a conversation. Both
// participants hold their own mutable copy keyed by (owner, room id); the two
// copies are updated together on send but never share a row.
type ConversationSummary struct {
	Id            uuid.UUID
	OwnerEmail    string
	RoomId        string
	PeerEmail     string
	LastMessage   string
	UnreadCount   int
	LastTimestamp int64 // milliseconds
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Message is a single append-only chat entry. Seq is assigned by the store
// and fixes the delivery order within a room.
type Message struct {
	Id        uuid.UUID
	Seq       int64
	RoomId    string
	Sender    string
	Text      string
	Timestamp int64 // milliseconds
	Read      bool
	CreatedAt time.Time
}
