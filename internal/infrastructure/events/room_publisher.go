package events

import (
	"context"
	"encoding/json"
	"time"

	"inkboard/internal/infrastructure/contracts"
	"inkboard/internal/infrastructure/messaging"
)

// Publisher emits room lifecycle events for the audit trail. The relay treats
// publishing as best effort and never blocks on it.
type Publisher interface {
	PublishRoomCreated(ctx context.Context, roomID string) error
	PublishMemberJoined(ctx context.Context, roomID, connectionID string, memberCount int) error
	PublishMemberLeft(ctx context.Context, roomID, connectionID string, memberCount int) error
	PublishRoomCleared(ctx context.Context, roomID, connectionID string) error
}

type RoomPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewRoomPublisher(rabbitmq *messaging.RabbitMQ) *RoomPublisher {
	return &RoomPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *RoomPublisher) publish(ctx context.Context, routingKey string, payload messaging.RoomEventData) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now()
	}

	roomEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		RoomID: payload.RoomID,
		Data:   roomEventJSON,
	})
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, roomID string) error {
	return p.publish(ctx, contracts.EventRoomCreated, messaging.RoomEventData{
		RoomID: roomID,
	})
}

func (p *RoomPublisher) PublishMemberJoined(ctx context.Context, roomID, connectionID string, memberCount int) error {
	return p.publish(ctx, contracts.EventMemberJoined, messaging.RoomEventData{
		RoomID:       roomID,
		ConnectionID: connectionID,
		MemberCount:  memberCount,
	})
}

func (p *RoomPublisher) PublishMemberLeft(ctx context.Context, roomID, connectionID string, memberCount int) error {
	return p.publish(ctx, contracts.EventMemberLeft, messaging.RoomEventData{
		RoomID:       roomID,
		ConnectionID: connectionID,
		MemberCount:  memberCount,
	})
}

func (p *RoomPublisher) PublishRoomCleared(ctx context.Context, roomID, connectionID string) error {
	return p.publish(ctx, contracts.EventRoomCleared, messaging.RoomEventData{
		RoomID:       roomID,
		ConnectionID: connectionID,
	})
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishRoomCreated(context.Context, string) error { return nil }

func (NoopPublisher) PublishMemberJoined(context.Context, string, string, int) error { return nil }

func (NoopPublisher) PublishMemberLeft(context.Context, string, string, int) error { return nil }

func (NoopPublisher) PublishRoomCleared(context.Context, string, string) error { return nil }
