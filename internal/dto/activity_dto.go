package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivitySignal is the payload carried on the in-process activity topic.
// The detail fields are event-specific: Email travels with SIGNUP, the
// thread/chat/model trio with CHAT.
type ActivitySignal struct {
	UserId     uuid.UUID  `json:"user_id"`
	EventType  string     `json:"event_type"`
	OccurredAt time.Time  `json:"occurred_at"`
	Email      string     `json:"email,omitempty"`
	ThreadId   *uuid.UUID `json:"thread_id,omitempty"`
	ChatId     *uuid.UUID `json:"chat_id,omitempty"`
	Model      string     `json:"model,omitempty"`
}
