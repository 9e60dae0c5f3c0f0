package events

import (
	"context"
	"encoding/json"
	"log"

	"inkboard/internal/domain"
	"inkboard/internal/infrastructure/contracts"
	"inkboard/internal/infrastructure/messaging"

	"github.com/rabbitmq/amqp091-go"
)

type roomConsumer struct {
	rabbitmq *messaging.RabbitMQ
	activity domain.RoomActivityRepository
}

func NewRoomConsumer(rabbitmq *messaging.RabbitMQ, activity domain.RoomActivityRepository) *roomConsumer {
	return &roomConsumer{
		rabbitmq: rabbitmq,
		activity: activity,
	}
}

func (c *roomConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.RoomsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		entry := entryFor(msg.RoutingKey, payload)
		if entry == nil {
			log.Printf("Unknown room event %q, dropping", msg.RoutingKey)
			return nil
		}

		if err := c.activity.Log(ctx, entry); err != nil {
			log.Printf("Failed to write activity log for room %s: %v", payload.RoomID, err)
			return err
		}

		return nil
	})
}

func entryFor(routingKey string, payload messaging.RoomEventData) *domain.RoomActivityLog {
	switch routingKey {
	case contracts.EventRoomCreated:
		return domain.NewRoomCreatedLog(payload.RoomID)
	case contracts.EventMemberJoined:
		entry := domain.NewMemberJoinedLog(payload.RoomID, payload.MemberCount)
		entry.Metadata["connection_id"] = payload.ConnectionID
		return entry
	case contracts.EventMemberLeft:
		entry := domain.NewMemberLeftLog(payload.RoomID, payload.MemberCount)
		entry.Metadata["connection_id"] = payload.ConnectionID
		return entry
	case contracts.EventRoomCleared:
		entry := domain.NewRoomClearedLog(payload.RoomID)
		entry.Metadata["connection_id"] = payload.ConnectionID
		return entry
	default:
		return nil
	}
}
