package model

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeDocument struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
