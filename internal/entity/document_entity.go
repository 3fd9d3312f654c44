package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeDocument is the relational record of an ingested document.
// Vector indexing happens (or not) behind the vectorstore boundary.
type KnowledgeDocument struct {
	Id        uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
}
