package unitofwork

import (
	"context"

	"ai-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ThreadRepository() contract.ThreadRepository
	ChatRepository() contract.ChatRepository
	FeedbackRepository() contract.FeedbackRepository
	ActivityLogRepository() contract.ActivityLogRepository
	DocumentRepository() contract.DocumentRepository
}
