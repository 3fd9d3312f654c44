package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ThreadId  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	Model     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Chat) TableName() string {
	return "chats"
}
