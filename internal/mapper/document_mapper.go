package mapper

import (
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if d == nil {
		return nil
	}
	return &entity.KnowledgeDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if d == nil {
		return nil
	}
	return &model.KnowledgeDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToEntities(models []*model.KnowledgeDocument) []*entity.KnowledgeDocument {
	entities := make([]*entity.KnowledgeDocument, len(models))
	for i, d := range models {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
