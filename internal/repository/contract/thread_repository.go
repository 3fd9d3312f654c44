package contract

import (
	"context"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *entity.Thread) error
	Update(ctx context.Context, thread *entity.Thread) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
