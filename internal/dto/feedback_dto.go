package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	ChatId     uuid.UUID `json:"chat_id" validate:"required"`
	IsPositive bool      `json:"is_positive"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING RESOLVED"`
}

type FeedbackListRequest struct {
	Page       int   `query:"page"`
	Size       int   `query:"size"`
	IsPositive *bool `query:"is_positive"`
}

type FeedbackResponse struct {
	Id         uuid.UUID `json:"id"`
	UserId     uuid.UUID `json:"user_id"`
	ChatId     uuid.UUID `json:"chat_id"`
	IsPositive bool      `json:"is_positive"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
