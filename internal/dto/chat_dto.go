package dto

type ConversationSummaryResponse struct {
	RoomId      string `json:"room_id"`
	With        string `json:"with"`
	LastMessage string `json:"lastMessage"`
	UnreadCount int    `json:"unreadCount"`
	Timestamp   int64  `json:"timestamp"`
}

type MessageResponse struct {
	RoomId    string `json:"room_id"`
	Seq       int64  `json:"seq"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

// StreamFrame is the envelope for every websocket delivery.
type StreamFrame struct {
	Type   string      `json:"type"`
	RoomId string      `json:"room_id,omitempty"`
	Data   interface{} `json:"data"`
}

const (
	FrameChatList = "chat_list"
	FrameMessage  = "message"
)

// Inbound websocket actions.
type StreamAction struct {
	Action string `json:"action"` // subscribe | unsubscribe | mark_read
	RoomId string `json:"room_id"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
