package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any completion backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the full response.
	// An empty response is an error, never an empty-string success.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and pushes incremental fragments onto
	// the channel in provider-emission order. The channel is closed when the
	// provider finishes or fails; the returned error is the terminal outcome.
	ChatStream(ctx context.Context, history []Message, fragments chan<- string, options ...Option) error
}
