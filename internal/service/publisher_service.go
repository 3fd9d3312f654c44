package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-chatbot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

// publishActivitySignal emits a best-effort activity signal. Failures are
// logged, never returned: activity tracking must not fail the request.
func publishActivitySignal(ctx context.Context, publisher IPublisherService, signal dto.ActivitySignal) {
	if publisher == nil {
		return
	}

	if signal.OccurredAt.IsZero() {
		signal.OccurredAt = time.Now()
	}
	payload, err := json.Marshal(signal)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal activity signal: %v", err)
		return
	}

	if err := publisher.Publish(ctx, payload); err != nil {
		log.Printf("[ERROR] Failed to publish activity signal %s: %v", signal.EventType, err)
	}
}
