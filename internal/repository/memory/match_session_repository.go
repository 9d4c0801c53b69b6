package memory

import (
	"time"

	"matchchat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type MatchSessionRepository struct {
	cache *cache.Cache
}

func NewMatchSessionRepository(ttl time.Duration) *MatchSessionRepository {
	// Purge expired sessions every 10 minutes.
	c := cache.New(ttl, 10*time.Minute)
	return &MatchSessionRepository{
		cache: c,
	}
}

func (r *MatchSessionRepository) Save(session *store.MatchSession) {
	r.cache.Set(session.OwnerEmail, session, cache.DefaultExpiration)
}

func (r *MatchSessionRepository) Get(ownerEmail string) (*store.MatchSession, bool) {
	if x, found := r.cache.Get(ownerEmail); found {
		return x.(*store.MatchSession), true
	}
	return nil, false
}

func (r *MatchSessionRepository) Delete(ownerEmail string) {
	r.cache.Delete(ownerEmail)
}

// Flush drops every cached session. Called when any profile changes, since a
// profile edit can reorder or disqualify candidates in other users' decks.
func (r *MatchSessionRepository) Flush() {
	r.cache.Flush()
}
