package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/contract"
	"matchchat-be/internal/repository/specification"
	"matchchat-be/internal/repository/unitofwork"
	"matchchat-be/pkg/events"
	pktNats "matchchat-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	// ListConversations returns the owner's full chat list, newest first.
	// Always a complete snapshot, never a diff.
	ListConversations(ctx context.Context, ownerEmail string) ([]dto.ConversationSummaryResponse, error)

	// ListMessages returns a room's backlog in append order. afterSeq > 0
	// skips messages at or before that sequence; limit > 0 caps the page.
	ListMessages(ctx context.Context, requesterEmail, roomId string, afterSeq int64, limit int) ([]dto.MessageResponse, error)

	// SendMessage appends the message and updates both participants'
	// summaries in one transaction, then publishes MESSAGE_SENT.
	SendMessage(ctx context.Context, senderEmail, roomId, text string) (*dto.MessageResponse, error)

	// MarkRead zeroes the owner's unread count for the room. Idempotent.
	MarkRead(ctx context.Context, ownerEmail, roomId string) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *chatService) ListConversations(ctx context.Context, ownerEmail string) ([]dto.ConversationSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summaries, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByOwnerEmail{OwnerEmail: ownerEmail},
		specification.OrderBy{Field: "last_timestamp", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ConversationSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, dto.ConversationSummaryResponse{
			RoomId:      summary.RoomId,
			With:        summary.PeerEmail,
			LastMessage: summary.LastMessage,
			UnreadCount: summary.UnreadCount,
			Timestamp:   summary.LastTimestamp,
		})
	}
	return result, nil
}

// participantSummary authorizes room access: only a user holding a summary
// for the room is a participant.
func (s *chatService) participantSummary(ctx context.Context, uow unitofwork.UnitOfWork, email, roomId string) (*entity.ConversationSummary, error) {
	summary, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByOwnerEmail{OwnerEmail: email},
		specification.ByRoomID{RoomID: roomId},
	)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, errors.New("room not found")
	}
	return summary, nil
}

func (s *chatService) ListMessages(ctx context.Context, requesterEmail, roomId string, afterSeq int64, limit int) ([]dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.participantSummary(ctx, uow, requesterEmail, roomId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{specification.ByRoomID{RoomID: roomId}}
	if afterSeq > 0 {
		specs = append(specs, specification.AfterSeq{Seq: afterSeq})
	}
	if limit > 0 {
		specs = append(specs, specification.Limit{N: limit})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		result = append(result, dto.MessageResponse{
			RoomId:    msg.RoomId,
			Seq:       msg.Seq,
			Sender:    msg.Sender,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
			Read:      msg.Read,
		})
	}
	return result, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderEmail, roomId, text string) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	senderSummary, err := s.participantSummary(ctx, uow, senderEmail, roomId)
	if err != nil {
		return nil, err
	}
	recipientEmail := senderSummary.PeerEmail

	now := time.Now().UnixMilli()
	message := &entity.Message{
		Id:        uuid.New(),
		RoomId:    roomId,
		Sender:    senderEmail,
		Text:      text,
		Timestamp: now,
		Read:      false,
		CreatedAt: time.Now(),
	}

	// The append and both summary updates commit together; a failure leaves
	// no message without its summaries.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	if err := uow.ConversationRepository().ApplyMessage(ctx, contract.SummaryUpdate{
		OwnerEmail:      recipientEmail,
		RoomId:          roomId,
		PeerEmail:       senderEmail,
		LastMessage:     text,
		LastTimestamp:   now,
		IncrementUnread: true,
	}); err != nil {
		return nil, err
	}

	if err := uow.ConversationRepository().ApplyMessage(ctx, contract.SummaryUpdate{
		OwnerEmail:      senderEmail,
		RoomId:          roomId,
		PeerEmail:       recipientEmail,
		LastMessage:     text,
		LastTimestamp:   now,
		IncrementUnread: false,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.MessageSent(roomId, senderEmail, recipientEmail, text, message.Seq, now)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MESSAGE_SENT event: %v\n", err)
		}
	}

	return &dto.MessageResponse{
		RoomId:    roomId,
		Seq:       message.Seq,
		Sender:    senderEmail,
		Text:      text,
		Timestamp: now,
		Read:      false,
	}, nil
}

func (s *chatService) MarkRead(ctx context.Context, ownerEmail, roomId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.participantSummary(ctx, uow, ownerEmail, roomId); err != nil {
		return err
	}

	if err := uow.ConversationRepository().ResetUnread(ctx, ownerEmail, roomId); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.ChatListUpdated(ownerEmail)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish CHAT_LIST_UPDATED event: %v\n", err)
		}
	}

	return nil
}
