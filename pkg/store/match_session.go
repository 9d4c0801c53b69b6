package store

import (
	"time"

	"matchchat-be/internal/dto"
)

// MatchSession holds one user's scored candidate deck for the lifetime of a
// single matching session. Candidates are never persisted; the session
// expires from the cache or is invalidated when a profile changes.
type MatchSession struct {
	OwnerEmail  string
	Candidates  []dto.MatchRecommendation
	GeneratedAt time.Time
}
