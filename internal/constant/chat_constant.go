package constant

import "time"

const (
	// ThreadTimeout is the inactivity window after which a new question
	// starts a new thread. Exactly ThreadTimeout elapsed counts as expired.
	ThreadTimeout = 30 * time.Minute

	SystemPrompt = "You are a helpful AI assistant. Respond in the same language as the user's message."

	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)
