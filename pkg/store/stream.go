package store

import "time"

// ActiveStream is the in-memory record of one in-flight streamed completion.
// It exists from stream start until natural completion, error, or TTL expiry
// (abandoned streams self-evict).
type ActiveStream struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ThreadID  string    `json:"thread_id"`
	Model     string    `json:"model"`
	StartedAt time.Time `json:"started_at"`
}
