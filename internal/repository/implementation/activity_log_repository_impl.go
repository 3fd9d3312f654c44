package implementation

import (
	"context"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/mapper"
	"ai-chatbot-be/internal/model"
	"ai-chatbot-be/internal/repository/contract"
	"ai-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewActivityLogRepository(db *gorm.DB) contract.ActivityLogRepository {
	return &ActivityLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *ActivityLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, logEntry *entity.ActivityLog) error {
	m := r.mapper.ToModel(logEntry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*logEntry = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActivityLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ActivityLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
