package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/repository/unitofwork"
	"ai-chatbot-be/pkg/events"
	pktNats "ai-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process activity topic: every signal becomes
// an activity_logs row and, when NATS is connected, an event on the external
// activity bus.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var signal dto.ActivitySignal
	if err := json.Unmarshal(msg.Payload, &signal); err != nil {
		log.Printf("[ERROR] Failed to unmarshal activity signal: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	logEntry := &entity.ActivityLog{
		Id:        uuid.New(),
		UserId:    signal.UserId,
		EventType: entity.EventType(signal.EventType),
		CreatedAt: signal.OccurredAt,
	}
	if err := uow.ActivityLogRepository().Create(ctx, logEntry); err != nil {
		log.Printf("[ERROR] Failed to persist activity log: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, eventForSignal(signal)); err != nil {
			// The row is already persisted; the bus catches up later.
			log.Printf("[WARN] Failed to forward activity event to NATS: %v", err)
		}
	}

	msg.Ack()
}

// eventForSignal maps an activity signal to the typed event published on the
// external bus. Unknown event types fall back to a bare BaseEvent.
func eventForSignal(signal dto.ActivitySignal) events.Event {
	switch entity.EventType(signal.EventType) {
	case entity.EventTypeSignup:
		return events.UserSignedUp{
			UserID:     signal.UserId,
			Email:      signal.Email,
			OccurredAt: signal.OccurredAt,
		}
	case entity.EventTypeLogin:
		return events.UserLoggedIn{
			UserID:     signal.UserId,
			OccurredAt: signal.OccurredAt,
		}
	case entity.EventTypeChat:
		evt := events.ChatCompleted{
			UserID:     signal.UserId,
			Model:      signal.Model,
			OccurredAt: signal.OccurredAt,
		}
		if signal.ThreadId != nil {
			evt.ThreadID = *signal.ThreadId
		}
		if signal.ChatId != nil {
			evt.ChatID = *signal.ChatId
		}
		return evt
	}
	return events.BaseEvent{
		Type:       signal.EventType,
		Data:       map[string]interface{}{"user_id": signal.UserId.String()},
		OccurredAt: signal.OccurredAt,
	}
}
