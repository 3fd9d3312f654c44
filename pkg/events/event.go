package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// UserSignedUp is emitted after a new account has been persisted.
type UserSignedUp struct {
	UserID     uuid.UUID
	Email      string
	OccurredAt time.Time
}

func (e UserSignedUp) EventType() string { return "SIGNUP" }

func (e UserSignedUp) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
	}
}

func (e UserSignedUp) Timestamp() time.Time { return e.OccurredAt }

// UserLoggedIn is emitted after a successful credential check.
type UserLoggedIn struct {
	UserID     uuid.UUID
	OccurredAt time.Time
}

func (e UserLoggedIn) EventType() string { return "LOGIN" }

func (e UserLoggedIn) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id": e.UserID.String(),
	}
}

func (e UserLoggedIn) Timestamp() time.Time { return e.OccurredAt }

// ChatCompleted is emitted once an answer has been persisted for a thread.
type ChatCompleted struct {
	UserID     uuid.UUID
	ThreadID   uuid.UUID
	ChatID     uuid.UUID
	Model      string
	OccurredAt time.Time
}

func (e ChatCompleted) EventType() string { return "CHAT" }

func (e ChatCompleted) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":   e.UserID.String(),
		"thread_id": e.ThreadID.String(),
		"chat_id":   e.ChatID.String(),
		"model":     e.Model,
	}
}

func (e ChatCompleted) Timestamp() time.Time { return e.OccurredAt }
