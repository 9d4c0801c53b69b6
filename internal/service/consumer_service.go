package service

import (
	"context"
	"encoding/json"
	"log"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService invalidates cached matching sessions when profiles change.
// A profile edit can reorder or disqualify candidates in anyone's deck, so
// the whole cache is dropped rather than tracking per-user dependencies.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sessions  *memory.MatchSessionRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessions *memory.MatchSessionRepository,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sessions:  sessions,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.ProfileChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal profile change message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Profile changed for %s, flushing match sessions", payload.Email)
	cs.sessions.Flush()
	msg.Ack()
}
