package implementation

import (
	"context"
	"errors"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/mapper"
	"ai-chatbot-be/internal/model"
	"ai-chatbot-be/internal/repository/contract"
	"ai-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeedbackMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeedbackMapper(),
	}
}

func (r *FeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.ToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) Update(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.ToModel(feedback)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feedback, error) {
	var m model.Feedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	var models []*model.Feedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Feedback{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
