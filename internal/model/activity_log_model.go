package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType string    `gorm:"type:text;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
