package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// Document is a retrievable knowledge fragment.
type Document struct {
	ID      uuid.UUID
	Content string
	Score   float64
}

// VectorStore is the contract for semantic retrieval backends.
type VectorStore interface {
	Index(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit int) ([]Document, error)
}

// NoopStore satisfies VectorStore without retrieval. Completions run on
// conversation history alone until an embedding backend is plugged in.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) Index(ctx context.Context, id uuid.UUID, content string) error {
	return nil
}

func (s *NoopStore) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *NoopStore) Search(ctx context.Context, query string, limit int) ([]Document, error) {
	return nil, nil
}
