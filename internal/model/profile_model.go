package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Profile struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string         `gorm:"type:varchar(255)"`
	Gender    string         `gorm:"type:varchar(20)"`
	Birthdate string         `gorm:"type:varchar(20)"`
	Mbti      string         `gorm:"type:varchar(8)"`
	Bio       string         `gorm:"type:text"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	LikeTags  datatypes.JSON `gorm:"type:jsonb"`
	ImageURL  *string        `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
