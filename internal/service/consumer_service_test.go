package service

import (
	"context"
	"testing"
	"time"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventForSignal(t *testing.T) {
	userId := uuid.New()
	threadId := uuid.New()
	chatId := uuid.New()
	occurredAt := time.Now()

	t.Run("signup", func(t *testing.T) {
		evt := eventForSignal(dto.ActivitySignal{
			UserId:     userId,
			EventType:  string(entity.EventTypeSignup),
			OccurredAt: occurredAt,
			Email:      "alice@example.com",
		})
		signup, ok := evt.(events.UserSignedUp)
		require.True(t, ok)
		assert.Equal(t, "SIGNUP", evt.EventType())
		assert.Equal(t, userId, signup.UserID)
		assert.Equal(t, "alice@example.com", evt.Payload()["email"])
	})

	t.Run("login", func(t *testing.T) {
		evt := eventForSignal(dto.ActivitySignal{
			UserId:     userId,
			EventType:  string(entity.EventTypeLogin),
			OccurredAt: occurredAt,
		})
		_, ok := evt.(events.UserLoggedIn)
		require.True(t, ok)
		assert.Equal(t, "LOGIN", evt.EventType())
		assert.Equal(t, userId.String(), evt.Payload()["user_id"])
	})

	t.Run("chat", func(t *testing.T) {
		evt := eventForSignal(dto.ActivitySignal{
			UserId:     userId,
			EventType:  string(entity.EventTypeChat),
			OccurredAt: occurredAt,
			ThreadId:   &threadId,
			ChatId:     &chatId,
			Model:      "gpt-4o-mini",
		})
		chat, ok := evt.(events.ChatCompleted)
		require.True(t, ok)
		assert.Equal(t, "CHAT", evt.EventType())
		assert.Equal(t, threadId, chat.ThreadID)
		assert.Equal(t, chatId, chat.ChatID)
		assert.Equal(t, "gpt-4o-mini", evt.Payload()["model"])
	})

	t.Run("unknown falls back to base event", func(t *testing.T) {
		evt := eventForSignal(dto.ActivitySignal{
			UserId:     userId,
			EventType:  "SOMETHING_ELSE",
			OccurredAt: occurredAt,
		})
		_, ok := evt.(events.BaseEvent)
		require.True(t, ok)
		assert.Equal(t, "SOMETHING_ELSE", evt.EventType())
	})
}

func TestConsume_PersistsActivityLog(t *testing.T) {
	factory := newFakeUowFactory()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "activity", factory, nil)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("activity", pubSub)
	userId := uuid.New()
	publishActivitySignal(context.Background(), publisher, dto.ActivitySignal{
		UserId:    userId,
		EventType: string(entity.EventTypeLogin),
	})

	require.Eventually(t, func() bool {
		factory.store.mu.Lock()
		defer factory.store.mu.Unlock()
		return len(factory.store.logs) == 1
	}, time.Second, 10*time.Millisecond)

	factory.store.mu.Lock()
	defer factory.store.mu.Unlock()
	assert.Equal(t, userId, factory.store.logs[0].UserId)
	assert.Equal(t, entity.EventTypeLogin, factory.store.logs[0].EventType)
}
