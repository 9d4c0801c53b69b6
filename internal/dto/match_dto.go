package dto

// MatchRecommendation is one ranked candidate. Ephemeral: it lives only
// inside a matching session, never in the database.
type MatchRecommendation struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Mbti       string   `json:"mbti"`
	CommonTags []string `json:"commonTags"`
	Score      int      `json:"score"`
}

type CreateRoomRequest struct {
	TargetEmail string `json:"target_email" validate:"required,email"`
}

type CreateRoomResponse struct {
	RoomId string `json:"room_id"`
}
