package service

import (
	"context"
	"sort"
	"sync"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/repository/contract"
	"matchchat-be/internal/repository/specification"
	"matchchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories for service tests. Specifications are interpreted
// by type-switching on the concrete filter structs.

type fakeStore struct {
	mu        sync.Mutex
	summaries map[string]*entity.ConversationSummary // owner|room
	messages  []*entity.Message
	profiles  map[string]*entity.Profile // email
	nextSeq   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		summaries: make(map[string]*entity.ConversationSummary),
		profiles:  make(map[string]*entity.Profile),
	}
}

func summaryKey(owner, room string) string { return owner + "|" + room }

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return nil }
func (u *fakeUow) ProfileRepository() contract.ProfileRepository {
	return &fakeProfileRepo{store: u.store}
}
func (u *fakeUow) ConversationRepository() contract.ConversationRepository {
	return &fakeConversationRepo{store: u.store}
}
func (u *fakeUow) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{store: u.store}
}

// --- conversations ---

type fakeConversationRepo struct {
	store *fakeStore
}

func (r *fakeConversationRepo) Upsert(ctx context.Context, summary *entity.ConversationSummary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *summary
	r.store.summaries[summaryKey(summary.OwnerEmail, summary.RoomId)] = &copied
	return nil
}

func (r *fakeConversationRepo) ApplyMessage(ctx context.Context, update contract.SummaryUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := summaryKey(update.OwnerEmail, update.RoomId)
	summary, ok := r.store.summaries[key]
	if !ok {
		summary = &entity.ConversationSummary{
			Id:         uuid.New(),
			OwnerEmail: update.OwnerEmail,
			RoomId:     update.RoomId,
			PeerEmail:  update.PeerEmail,
		}
		r.store.summaries[key] = summary
	}
	summary.LastMessage = update.LastMessage
	summary.LastTimestamp = update.LastTimestamp
	if update.IncrementUnread {
		summary.UnreadCount++
	} else {
		summary.UnreadCount = 0
	}
	return nil
}

func (r *fakeConversationRepo) ResetUnread(ctx context.Context, ownerEmail, roomId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if summary, ok := r.store.summaries[summaryKey(ownerEmail, roomId)]; ok {
		summary.UnreadCount = 0
	}
	return nil
}

func matchSummary(s *entity.ConversationSummary, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch f := spec.(type) {
		case specification.ByOwnerEmail:
			if s.OwnerEmail != f.OwnerEmail {
				return false
			}
		case specification.ByRoomID:
			if s.RoomId != f.RoomID {
				return false
			}
		}
	}
	return true
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.summaries {
		if matchSummary(s, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.ConversationSummary
	for _, s := range r.store.summaries {
		if matchSummary(s, specs) {
			copied := *s
			result = append(result, &copied)
		}
	}

	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "last_timestamp" {
			sort.SliceStable(result, func(i, j int) bool {
				if order.Desc {
					return result[i].LastTimestamp > result[j].LastTimestamp
				}
				return result[i].LastTimestamp < result[j].LastTimestamp
			})
		}
	}
	return result, nil
}

func (r *fakeConversationRepo) DeleteByOwner(ctx context.Context, ownerEmail string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for key, s := range r.store.summaries {
		if s.OwnerEmail == ownerEmail {
			delete(r.store.summaries, key)
		}
	}
	return nil
}

// --- messages ---

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextSeq++
	message.Seq = r.store.nextSeq
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	limit := 0
	var result []*entity.Message
	for _, m := range r.store.messages {
		keep := true
		for _, spec := range specs {
			switch f := spec.(type) {
			case specification.ByRoomID:
				if m.RoomId != f.RoomID {
					keep = false
				}
			case specification.AfterSeq:
				if m.Seq <= f.Seq {
					keep = false
				}
			case specification.Limit:
				limit = f.N
			}
		}
		if keep {
			copied := *m
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- profiles ---

type fakeProfileRepo struct {
	store *fakeStore
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *profile
	r.store.profiles[profile.Email] = &copied
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	return r.Create(ctx, profile)
}

func (r *fakeProfileRepo) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for email, p := range r.store.profiles {
		if p.UserId == userId {
			delete(r.store.profiles, email)
		}
	}
	return nil
}

func matchProfile(p *entity.Profile, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch f := spec.(type) {
		case specification.ByEmail:
			if p.Email != f.Email {
				return false
			}
		case specification.NotEmail:
			if p.Email == f.Email {
				return false
			}
		case specification.OppositeGender:
			if string(p.Gender) == "" || string(p.Gender) == f.Gender {
				return false
			}
		case specification.CompleteOnly:
			if !p.Complete() {
				return false
			}
		}
	}
	return true
}

func (r *fakeProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.profiles {
		if matchProfile(p, specs) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Map iteration order is random; sort by email for deterministic tests.
	emails := make([]string, 0, len(r.store.profiles))
	for email := range r.store.profiles {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	var result []*entity.Profile
	for _, email := range emails {
		p := r.store.profiles[email]
		if matchProfile(p, specs) {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeProfileRepo) UpdateImageURL(ctx context.Context, email string, imageURL string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.profiles[email]; ok {
		p.ImageURL = &imageURL
	}
	return nil
}
