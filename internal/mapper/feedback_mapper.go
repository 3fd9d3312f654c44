package mapper

import (
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/model"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}
	return &entity.Feedback{
		Id:         f.Id,
		UserId:     f.UserId,
		ChatId:     f.ChatId,
		IsPositive: f.IsPositive,
		Status:     entity.FeedbackStatus(f.Status),
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		Id:         f.Id,
		UserId:     f.UserId,
		ChatId:     f.ChatId,
		IsPositive: f.IsPositive,
		Status:     string(f.Status),
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToEntities(models []*model.Feedback) []*entity.Feedback {
	entities := make([]*entity.Feedback, len(models))
	for i, f := range models {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
