package memory

import (
	"time"

	"ai-chatbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// StreamRepository tracks in-flight streamed completions. Entries expire at
// the stream timeout so an abandoned stream never leaks a registration.
type StreamRepository struct {
	cache *cache.Cache
}

func NewStreamRepository(ttl time.Duration) *StreamRepository {
	c := cache.New(ttl, 1*time.Minute)
	return &StreamRepository{
		cache: c,
	}
}

func (r *StreamRepository) Save(s *store.ActiveStream) {
	r.cache.Set(s.ID, s, cache.DefaultExpiration)
}

func (r *StreamRepository) Get(streamID string) (*store.ActiveStream, bool) {
	if x, found := r.cache.Get(streamID); found {
		return x.(*store.ActiveStream), true
	}
	return nil, false
}

func (r *StreamRepository) Delete(streamID string) {
	r.cache.Delete(streamID)
}

func (r *StreamRepository) Count() int {
	return r.cache.ItemCount()
}
