package dto

type ProfileResponse struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Gender    string   `json:"gender"`
	Birthdate string   `json:"birthdate"`
	Mbti      string   `json:"mbti"`
	Bio       string   `json:"bio"`
	Tags      []string `json:"tags"`
	LikeTags  []string `json:"likeTags"`
	ImageURL  string   `json:"profileImageUrl,omitempty"`
}

// ProfileChangedMessage is the payload broadcast on the in-process bus when a
// profile mutates; match session caches are invalidated on receipt.
type ProfileChangedMessage struct {
	Email string `json:"email"`
}

type UpdateProfileRequest struct {
	Name      string   `json:"name" validate:"required"`
	Gender    string   `json:"gender" validate:"required,oneof=male female"`
	Birthdate string   `json:"birthdate" validate:"required"`
	Mbti      string   `json:"mbti" validate:"required,len=4"`
	Bio       string   `json:"bio"`
	Tags      []string `json:"tags" validate:"max=5"`
	LikeTags  []string `json:"likeTags" validate:"max=5"`
}
