package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	FeedbackStatusPending  FeedbackStatus = "PENDING"
	FeedbackStatusResolved FeedbackStatus = "RESOLVED"
)

// Feedback is a single thumbs-up/down on a chat. One per (user, chat).
type Feedback struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ChatId     uuid.UUID
	IsPositive bool
	Status     FeedbackStatus
	CreatedAt  time.Time
}
