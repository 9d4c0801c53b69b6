package unitofwork

import (
	"context"

	"matchchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProfileRepository() contract.ProfileRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
}
