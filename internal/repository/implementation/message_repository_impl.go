package implementation

import (
	"context"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/mapper"
	"matchchat-be/internal/model"
	"matchchat-be/internal/repository/contract"
	"matchchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var ms []*model.Message
	query := applySpecifications(r.db.WithContext(ctx), specs...).Order("seq ASC")

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	messages := make([]*entity.Message, 0, len(ms))
	for _, m := range ms {
		messages = append(messages, r.mapper.MessageToEntity(m))
	}
	return messages, nil
}
