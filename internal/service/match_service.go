package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/memory"
	"matchchat-be/internal/repository/specification"
	"matchchat-be/internal/repository/unitofwork"
	"matchchat-be/pkg/events"
	pktNats "matchchat-be/pkg/nats"
	"matchchat-be/pkg/roomkey"
	"matchchat-be/pkg/store"

	"github.com/google/uuid"
)

type IMatchService interface {
	// Recommendations returns scored candidates for the caller, highest
	// score first, with existing chat peers filtered out in rank order.
	Recommendations(ctx context.Context, email string) ([]dto.MatchRecommendation, error)

	// CreateRoom writes both participants' fresh summaries under the
	// derived room key in one transaction.
	CreateRoom(ctx context.Context, selfEmail, targetEmail string) (*dto.CreateRoomResponse, error)
}

type matchService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       *memory.MatchSessionRepository
	eventPublisher *pktNats.Publisher
}

func NewMatchService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.MatchSessionRepository,
	eventPublisher *pktNats.Publisher,
) IMatchService {
	return &matchService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		eventPublisher: eventPublisher,
	}
}

func (s *matchService) Recommendations(ctx context.Context, email string) ([]dto.MatchRecommendation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	me, err := uow.ProfileRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if me == nil || !me.Complete() {
		return nil, errors.New("complete your profile before matching")
	}

	ranked, err := s.rankedCandidates(ctx, uow, me)
	if err != nil {
		return nil, err
	}

	// Peers the caller already chats with drop out of the deck; the rest
	// keep their rank order.
	peers, err := s.existingPeers(ctx, uow, email)
	if err != nil {
		return nil, err
	}

	filtered := make([]dto.MatchRecommendation, 0, len(ranked))
	for _, rec := range ranked {
		if !peers[rec.Email] {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// rankedCandidates returns the caller's scored deck, reusing the cached
// matching session when one is still live.
func (s *matchService) rankedCandidates(ctx context.Context, uow unitofwork.UnitOfWork, me *entity.Profile) ([]dto.MatchRecommendation, error) {
	if session, ok := s.sessions.Get(me.Email); ok {
		return session.Candidates, nil
	}

	candidates, err := uow.ProfileRepository().FindAll(ctx,
		specification.NotEmail{Email: me.Email},
		specification.OppositeGender{Gender: string(me.Gender)},
		specification.CompleteOnly{},
	)
	if err != nil {
		return nil, err
	}

	ranked := rankCandidates(me, candidates)

	s.sessions.Save(&store.MatchSession{
		OwnerEmail:  me.Email,
		Candidates:  ranked,
		GeneratedAt: time.Now(),
	})

	return ranked, nil
}

func (s *matchService) existingPeers(ctx context.Context, uow unitofwork.UnitOfWork, email string) (map[string]bool, error) {
	summaries, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByOwnerEmail{OwnerEmail: email},
	)
	if err != nil {
		return nil, err
	}
	peers := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		peers[summary.PeerEmail] = true
	}
	return peers, nil
}

func (s *matchService) CreateRoom(ctx context.Context, selfEmail, targetEmail string) (*dto.CreateRoomResponse, error) {
	if selfEmail == targetEmail {
		return nil, errors.New("cannot create a room with yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	target, err := uow.ProfileRepository().FindOne(ctx, specification.ByEmail{Email: targetEmail})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.New("target user not found")
	}

	roomId := roomkey.Derive(selfEmail, targetEmail)
	now := time.Now().UnixMilli()

	// Both summaries are created together; a half-created room would be
	// visible to only one participant.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	pairs := []struct{ owner, peer string }{
		{selfEmail, targetEmail},
		{targetEmail, selfEmail},
	}
	for _, p := range pairs {
		summary := &entity.ConversationSummary{
			Id:            uuid.New(),
			OwnerEmail:    p.owner,
			RoomId:        roomId,
			PeerEmail:     p.peer,
			LastMessage:   "",
			UnreadCount:   0,
			LastTimestamp: now,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if err := uow.ConversationRepository().Upsert(ctx, summary); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// The new peer must not reappear in the caller's deck.
	s.sessions.Delete(selfEmail)

	if s.eventPublisher != nil {
		evt := events.RoomCreated(roomId, []string{selfEmail, targetEmail})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish ROOM_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateRoomResponse{RoomId: roomId}, nil
}
