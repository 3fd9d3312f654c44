package model

import (
	"time"

	"github.com/google/uuid"
)

type Thread struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"` // Owner; drives the per-user latest-thread lookup
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	LastChatAt time.Time `gorm:"not null;index"`
}

func (Thread) TableName() string {
	return "threads"
}
