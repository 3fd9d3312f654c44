package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Question    string `json:"question" validate:"required"`
	IsStreaming bool   `json:"is_streaming"`
	Model       string `json:"model"`
}

type ChatResponse struct {
	Id        uuid.UUID `json:"id"`
	ThreadId  uuid.UUID `json:"thread_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSummary struct {
	Id        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

type ThreadWithChatsResponse struct {
	Id         uuid.UUID     `json:"id"`
	UserId     uuid.UUID     `json:"user_id"`
	CreatedAt  time.Time     `json:"created_at"`
	LastChatAt time.Time     `json:"last_chat_at"`
	Chats      []ChatSummary `json:"chats"`
}

type ThreadListRequest struct {
	Page   int    `query:"page"`
	Size   int    `query:"size"`
	Sort   string `query:"sort"`
	UserId string `query:"user_id"`
}

// ChatStreamEvent is one item on a streaming completion channel. Content
// carries an answer fragment; a non-nil Err terminates the stream.
type ChatStreamEvent struct {
	Content string
	Err     error
}
