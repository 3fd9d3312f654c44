package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedbacks_user_chat"`
	ChatId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedbacks_user_chat"`
	IsPositive bool      `gorm:"not null"`
	Status     string    `gorm:"type:text;not null;default:'PENDING'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
