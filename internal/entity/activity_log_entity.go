package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeSignup EventType = "SIGNUP"
	EventTypeLogin  EventType = "LOGIN"
	EventTypeChat   EventType = "CHAT"
)

type ActivityLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	EventType EventType
	CreatedAt time.Time
}
