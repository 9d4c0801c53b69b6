package contract

import (
	"context"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/specification"
)

// SummaryUpdate is the per-owner mutation applied when a message lands in a
// room. IncrementUnread uses an atomic column expression so concurrent sends
// never lose an increment; when false the unread count is overwritten to zero
// (the sender's own copy).
type SummaryUpdate struct {
	OwnerEmail      string
	RoomId          string
	PeerEmail       string
	LastMessage     string
	LastTimestamp   int64
	IncrementUnread bool
}

type ConversationRepository interface {
	// Upsert writes a full summary row, overwriting an existing
	// (owner, room) pair. Used at room creation.
	Upsert(ctx context.Context, summary *entity.ConversationSummary) error

	// ApplyMessage folds one sent message into one owner's summary.
	ApplyMessage(ctx context.Context, update SummaryUpdate) error

	// ResetUnread overwrites unread_count to zero. Idempotent.
	ResetUnread(ctx context.Context, ownerEmail, roomId string) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationSummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationSummary, error)
	DeleteByOwner(ctx context.Context, ownerEmail string) error
}
