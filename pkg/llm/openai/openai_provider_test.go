package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(url string) *OpenAiProvider {
	p := NewOpenAiProvider(url, "test-key", "gpt-4o-mini")
	p.Client.Timeout = 5 * time.Second
	return p
}

func history() []llm.Message {
	return []llm.Message{
		{Role: "system", Content: "You are helpful."},
		{Role: "user", Content: "Hello"},
	}
}

func TestChat(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Hi there"}},
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	answer, err := p.Chat(context.Background(), history())
	require.NoError(t, err)

	assert.Equal(t, "Hi there", answer)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestChat_ModelOverride(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Chat(context.Background(), history(), llm.WithModel("gpt-4o"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", gotReq.Model)
}

func TestChat_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Chat(context.Background(), history())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChat_EmptyCompletion(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices": []}`},
		{name: "empty content", body: `{"choices": [{"message": {"role": "assistant", "content": ""}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := newTestProvider(srv.URL)
			_, err := p.Chat(context.Background(), history())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "empty completion")
		})
	}
}

func collectFragments(t *testing.T, p *OpenAiProvider) ([]string, error) {
	t.Helper()
	fragments := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.ChatStream(context.Background(), history(), fragments)
	}()
	var got []string
	for f := range fragments {
		got = append(got, f)
	}
	return got, <-errCh
}

func TestChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		lines := []string{
			`data: {"choices":[{"delta":{"role":"assistant","content":null}}]}`,
			`data: {"choices":[{"delta":{"content":"Hel"}}]}`,
			``,
			`: keep-alive comment`,
			`data: {"choices":[{"delta":{"content":"lo"}}]}`,
			`data: {"choices":[{"delta":{}},{"finish_reason":null}]}`,
			`data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`,
			`data: [DONE]`,
		}
		for _, line := range lines {
			w.Write([]byte(line + "\n"))
		}
	}))
	defer srv.Close()

	got, err := collectFragments(t, newTestProvider(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, got)
}

func TestChatStream_DoneWithoutFinishReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Join([]string{
			`data: {"choices":[{"delta":{"content":"A"}}]}`,
			`data: [DONE]`,
			``,
		}, "\n")))
	}))
	defer srv.Close()

	got, err := collectFragments(t, newTestProvider(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)
}

func TestChatStream_EOFWithoutSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"partial"}}]}` + "\n"))
	}))
	defer srv.Close()

	got, err := collectFragments(t, newTestProvider(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, []string{"partial"}, got)
}

func TestChatStream_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer srv.Close()

	got, err := collectFragments(t, newTestProvider(srv.URL))
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Contains(t, err.Error(), "401")
}

func TestChatStream_MalformedChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data: {not json}\n"))
	}))
	defer srv.Close()

	_, err := collectFragments(t, newTestProvider(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal stream chunk")
}

func TestChatStream_ClosesFragmentsOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	fragments := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.ChatStream(context.Background(), history(), fragments)
	}()

	// The channel must close even on failure, or consumers hang.
	_, open := <-fragments
	assert.False(t, open)
	require.Error(t, <-errCh)
}
