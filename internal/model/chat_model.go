package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationSummary struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_owner_room;index"`
	RoomId        string    `gorm:"type:varchar(600);not null;uniqueIndex:idx_owner_room;index"`
	PeerEmail     string    `gorm:"type:varchar(255);not null"`
	LastMessage   string    `gorm:"type:text"`
	UnreadCount   int       `gorm:"not null;default:0"`
	LastTimestamp int64     `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ConversationSummary) TableName() string {
	return "conversation_summaries"
}

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	RoomId    string    `gorm:"type:varchar(600);not null;index"`
	Sender    string    `gorm:"type:varchar(255);not null"`
	Text      string    `gorm:"type:text;not null"`
	Timestamp int64     `gorm:"not null"`
	Read      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
