package entity

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MaxProfileTags bounds both tags and likeTags.
const MaxProfileTags = 5

// Profile is the single mutable profile row owned by one user. Mbti is the
// personality type used by match scoring.
type Profile struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Email     string
	Name      string
	Gender    Gender
	Birthdate string
	Mbti      string
	Bio       string
	Tags      []string
	LikeTags  []string
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Complete reports whether the profile has passed signup-completion: the
// required fields are set and it may appear in match recommendations.
func (p *Profile) Complete() bool {
	return p.Name != "" && p.Gender != "" && p.Birthdate != "" && p.Mbti != ""
}
