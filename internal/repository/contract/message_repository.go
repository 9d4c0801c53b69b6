package contract

import (
	"context"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/specification"
)

type MessageRepository interface {
	// Create appends a message; the store assigns Seq, which fixes the
	// room's delivery order. Messages are never updated or deleted here.
	Create(ctx context.Context, message *entity.Message) error

	// FindAll returns messages in append (seq) order.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
}
