package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-musicchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, evt events.Event) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

type eventEnvelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (p *publisherService) Publish(ctx context.Context, evt events.Event) error {
	env := eventEnvelope{
		Type:       evt.EventType(),
		Payload:    evt.Payload(),
		OccurredAt: evt.Timestamp(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}
