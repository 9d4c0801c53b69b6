package service

import (
	"context"
	"encoding/json"
	"fmt"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/pkg/logger"
	"matchchat-be/internal/websocket"
	"matchchat-be/pkg/events"
	pktNats "matchchat-be/pkg/nats"
)

// IDeliveryService drains the durable chat event stream into live websocket
// connections: room fan-out for messages, full chat-list snapshots for
// summary changes.
type IDeliveryService interface {
	Start() error
}

type deliveryService struct {
	subscriber  *pktNats.Subscriber
	hub         *websocket.Hub
	chatService IChatService
	logger      logger.ILogger
}

func NewDeliveryService(
	subscriber *pktNats.Subscriber,
	hub *websocket.Hub,
	chatService IChatService,
	log logger.ILogger,
) IDeliveryService {
	return &deliveryService{
		subscriber:  subscriber,
		hub:         hub,
		chatService: chatService,
		logger:      log,
	}
}

func (s *deliveryService) Start() error {
	return s.subscriber.Subscribe("chat.>", "chat-delivery", s.handleEvent)
}

func (s *deliveryService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeMessageSent:
		return s.handleMessageSent(ctx, event)
	case events.TypeRoomCreated:
		return s.handleRoomCreated(ctx, event)
	case events.TypeChatListUpdated:
		return s.handleChatListUpdated(ctx, event)
	case events.TypeUserDeleted:
		return nil
	default:
		s.logger.Warn("Delivery", "Unknown event type", map[string]interface{}{"type": event.EventType()})
		return nil
	}
}

func payloadString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func payloadInt64(data map[string]interface{}, key string) int64 {
	switch v := data[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

func (s *deliveryService) handleMessageSent(ctx context.Context, event events.Event) error {
	data := event.Payload()
	roomId := payloadString(data, "room_id")
	sender := payloadString(data, "sender")
	recipient := payloadString(data, "recipient")

	frame := dto.StreamFrame{
		Type:   dto.FrameMessage,
		RoomId: roomId,
		Data: dto.MessageResponse{
			RoomId:    roomId,
			Seq:       payloadInt64(data, "seq"),
			Sender:    sender,
			Text:      payloadString(data, "text"),
			Timestamp: payloadInt64(data, "timestamp"),
			Read:      false,
		},
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	s.hub.SendToRoom(roomId, payload)

	// A recipient currently viewing the room consumes the message
	// immediately, so their unread count goes straight back to zero.
	for _, viewer := range s.hub.RoomSubscribers(roomId) {
		if viewer != sender {
			if err := s.chatService.MarkRead(ctx, viewer, roomId); err != nil {
				s.logger.Warn("Delivery", "Auto mark-read failed", map[string]interface{}{
					"room_id": roomId, "viewer": viewer, "error": err.Error(),
				})
			}
		}
	}

	if err := s.pushChatList(ctx, sender); err != nil {
		return err
	}
	return s.pushChatList(ctx, recipient)
}

func (s *deliveryService) handleRoomCreated(ctx context.Context, event events.Event) error {
	participants, _ := event.Payload()["participants"].([]interface{})
	for _, p := range participants {
		if email, ok := p.(string); ok {
			if err := s.pushChatList(ctx, email); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *deliveryService) handleChatListUpdated(ctx context.Context, event events.Event) error {
	owner := payloadString(event.Payload(), "owner")
	if owner == "" {
		return nil
	}
	return s.pushChatList(ctx, owner)
}

// pushChatList sends the owner a complete, freshly materialized snapshot.
func (s *deliveryService) pushChatList(ctx context.Context, ownerEmail string) error {
	if ownerEmail == "" {
		return nil
	}

	summaries, err := s.chatService.ListConversations(ctx, ownerEmail)
	if err != nil {
		return fmt.Errorf("failed to build chat list for %s: %w", ownerEmail, err)
	}

	payload, err := json.Marshal(dto.StreamFrame{
		Type: dto.FrameChatList,
		Data: summaries,
	})
	if err != nil {
		return err
	}

	s.hub.SendToUser(ownerEmail, payload)
	return nil
}
