package contract

import (
	"context"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/specification"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, logEntry *entity.ActivityLog) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
