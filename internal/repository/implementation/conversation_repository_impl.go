package implementation

import (
	"context"
	"errors"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/mapper"
	"matchchat-be/internal/model"
	"matchchat-be/internal/repository/contract"
	"matchchat-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ConversationRepositoryImpl) Upsert(ctx context.Context, summary *entity.ConversationSummary) error {
	m := r.mapper.SummaryToModel(summary)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_email"}, {Name: "room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"peer_email", "last_message", "unread_count", "last_timestamp", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*summary = *r.mapper.SummaryToEntity(m)
	return nil
}

// ApplyMessage folds a sent message into one owner's summary row. The unread
// increment is a single SQL expression, not read-modify-write, so concurrent
// sends to the same recipient cannot lose counts.
func (r *ConversationRepositoryImpl) ApplyMessage(ctx context.Context, update contract.SummaryUpdate) error {
	assignments := map[string]interface{}{
		"peer_email":     update.PeerEmail,
		"last_message":   update.LastMessage,
		"last_timestamp": update.LastTimestamp,
	}
	if update.IncrementUnread {
		assignments["unread_count"] = gorm.Expr("conversation_summaries.unread_count + 1")
	} else {
		assignments["unread_count"] = 0
	}

	initialUnread := 0
	if update.IncrementUnread {
		initialUnread = 1
	}

	m := &model.ConversationSummary{
		OwnerEmail:    update.OwnerEmail,
		RoomId:        update.RoomId,
		PeerEmail:     update.PeerEmail,
		LastMessage:   update.LastMessage,
		UnreadCount:   initialUnread,
		LastTimestamp: update.LastTimestamp,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_email"}, {Name: "room_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(m).Error
}

func (r *ConversationRepositoryImpl) ResetUnread(ctx context.Context, ownerEmail, roomId string) error {
	return r.db.WithContext(ctx).Model(&model.ConversationSummary{}).
		Where("owner_email = ? AND room_id = ?", ownerEmail, roomId).
		Update("unread_count", 0).Error
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationSummary, error) {
	var m model.ConversationSummary
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.SummaryToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationSummary, error) {
	var ms []*model.ConversationSummary
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	summaries := make([]*entity.ConversationSummary, 0, len(ms))
	for _, m := range ms {
		summaries = append(summaries, r.mapper.SummaryToEntity(m))
	}
	return summaries, nil
}

func (r *ConversationRepositoryImpl) DeleteByOwner(ctx context.Context, ownerEmail string) error {
	return r.db.WithContext(ctx).Where("owner_email = ?", ownerEmail).Delete(&model.ConversationSummary{}).Error
}
