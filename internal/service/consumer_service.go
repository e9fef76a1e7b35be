package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-musicchat-be/internal/repository/specification"
	"ai-musicchat-be/internal/repository/unitofwork"
	"ai-musicchat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
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
	var env eventEnvelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if env.Type != events.TypeChatTurnRecorded {
		log.Printf("[WARN] Ignoring unknown event type: %s", env.Type)
		msg.Ack()
		return
	}

	chatIdStr, _ := env.Payload["chat_id"].(string)
	chatId, err := uuid.Parse(chatIdStr)
	if err != nil {
		log.Printf("[ERROR] Event carries invalid chat_id %q: %v", chatIdStr, err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatDetailsRepository().Count(ctx, specification.ByChatID{ChatID: chatId})
	if err != nil {
		log.Printf("[ERROR] Failed to count turns for chat %s: %v", chatId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[INFO] Chat %s now holds %d turns (last role: %v)", chatId, turns, env.Payload["role"])
	msg.Ack()
}
