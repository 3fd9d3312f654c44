package entity

import (
	"time"

	"github.com/google/uuid"
)

// Thread groups consecutive chats from one owner. LastChatAt tracks the
// creation time of the most recent chat and drives session continuity.
type Thread struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
	LastChatAt time.Time
}

// Chat is one question/answer turn. Immutable once persisted.
type Chat struct {
	Id        uuid.UUID
	ThreadId  uuid.UUID
	UserId    uuid.UUID
	Question  string
	Answer    string
	Model     string
	CreatedAt time.Time
}

// ChatWithAuthor is the report projection joining a chat with its author.
type ChatWithAuthor struct {
	Chat
	UserEmail string
	UserName  string
}
