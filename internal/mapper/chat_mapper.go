package mapper

import (
	"matchchat-be/internal/entity"
	"matchchat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SummaryToEntity(s *model.ConversationSummary) *entity.ConversationSummary {
	if s == nil {
		return nil
	}
	return &entity.ConversationSummary{
		Id:            s.Id,
		OwnerEmail:    s.OwnerEmail,
		RoomId:        s.RoomId,
		PeerEmail:     s.PeerEmail,
		LastMessage:   s.LastMessage,
		UnreadCount:   s.UnreadCount,
		LastTimestamp: s.LastTimestamp,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *ChatMapper) SummaryToModel(s *entity.ConversationSummary) *model.ConversationSummary {
	if s == nil {
		return nil
	}
	return &model.ConversationSummary{
		Id:            s.Id,
		OwnerEmail:    s.OwnerEmail,
		RoomId:        s.RoomId,
		PeerEmail:     s.PeerEmail,
		LastMessage:   s.LastMessage,
		UnreadCount:   s.UnreadCount,
		LastTimestamp: s.LastTimestamp,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		Seq:       msg.Seq,
		RoomId:    msg.RoomId,
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
		Read:      msg.Read,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:        msg.Id,
		Seq:       msg.Seq,
		RoomId:    msg.RoomId,
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
		Read:      msg.Read,
		CreatedAt: msg.CreatedAt,
	}
}
