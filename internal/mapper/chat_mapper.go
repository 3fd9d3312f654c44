package mapper

import (
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Thread Mappers

func (m *ChatMapper) ThreadToEntity(t *model.Thread) *entity.Thread {
	if t == nil {
		return nil
	}
	return &entity.Thread{
		Id:         t.Id,
		UserId:     t.UserId,
		CreatedAt:  t.CreatedAt,
		LastChatAt: t.LastChatAt,
	}
}

func (m *ChatMapper) ThreadToModel(t *entity.Thread) *model.Thread {
	if t == nil {
		return nil
	}
	return &model.Thread{
		Id:         t.Id,
		UserId:     t.UserId,
		CreatedAt:  t.CreatedAt,
		LastChatAt: t.LastChatAt,
	}
}

// Chat Mappers

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		ThreadId:  c.ThreadId,
		UserId:    c.UserId,
		Question:  c.Question,
		Answer:    c.Answer,
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		ThreadId:  c.ThreadId,
		UserId:    c.UserId,
		Question:  c.Question,
		Answer:    c.Answer,
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) ChatsToEntities(models []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(models))
	for i, c := range models {
		entities[i] = m.ChatToEntity(c)
	}
	return entities
}
