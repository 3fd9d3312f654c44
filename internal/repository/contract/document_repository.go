package contract

import (
	"context"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.KnowledgeDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
