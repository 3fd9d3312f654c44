package mapper

import (
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/model"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.ActivityLog) *entity.ActivityLog {
	if a == nil {
		return nil
	}
	return &entity.ActivityLog{
		Id:        a.Id,
		UserId:    a.UserId,
		EventType: entity.EventType(a.EventType),
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.ActivityLog) *model.ActivityLog {
	if a == nil {
		return nil
	}
	return &model.ActivityLog{
		Id:        a.Id,
		UserId:    a.UserId,
		EventType: string(a.EventType),
		CreatedAt: a.CreatedAt,
	}
}
