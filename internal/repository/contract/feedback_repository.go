package contract

import (
	"context"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/specification"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	Update(ctx context.Context, feedback *entity.Feedback) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feedback, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
