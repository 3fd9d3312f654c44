package contract

import (
	"context"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	DeleteByThreadId(ctx context.Context, threadId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	// FindAllWithAuthor joins each chat with its author for reporting.
	FindAllWithAuthor(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatWithAuthor, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
