package memory

import (
	"testing"
	"time"

	"ai-chatbot-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRepository(t *testing.T) {
	repo := NewStreamRepository(time.Minute)

	active := &store.ActiveStream{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		ThreadID:  uuid.NewString(),
		Model:     "gpt-4o-mini",
		StartedAt: time.Now(),
	}
	repo.Save(active)

	got, found := repo.Get(active.ID)
	require.True(t, found)
	assert.Equal(t, active.ThreadID, got.ThreadID)
	assert.Equal(t, 1, repo.Count())

	repo.Delete(active.ID)
	_, found = repo.Get(active.ID)
	assert.False(t, found)
	assert.Equal(t, 0, repo.Count())
}

func TestStreamRepository_Expiry(t *testing.T) {
	repo := NewStreamRepository(20 * time.Millisecond)

	repo.Save(&store.ActiveStream{ID: "s1", StartedAt: time.Now()})
	require.Equal(t, 1, repo.Count())

	time.Sleep(50 * time.Millisecond)

	_, found := repo.Get("s1")
	assert.False(t, found)
}
