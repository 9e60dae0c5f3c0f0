package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomEventType string

const (
	EventRoomCreated  RoomEventType = "room_created"
	EventMemberJoined RoomEventType = "member_joined"
	EventMemberLeft   RoomEventType = "member_left"
	EventRoomCleared  RoomEventType = "room_cleared"
)

// RoomActivityLog is an audit record of room lifecycle events, written by the
// activity consumer. Best effort only; losing one never affects the relay.
type RoomActivityLog struct {
	ID        string         `bson:"_id" json:"id"`
	RoomID    string         `bson:"room_id" json:"roomId"`
	EventType RoomEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type RoomActivityRepository interface {
	Log(ctx context.Context, entry *RoomActivityLog) error
	GetByRoomID(ctx context.Context, roomID string, limit int) ([]RoomActivityLog, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewRoomCreatedLog(roomID string) *RoomActivityLog {
	return &RoomActivityLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: EventRoomCreated,
		Timestamp: time.Now(),
		Metadata:  map[string]any{},
	}
}

func NewMemberJoinedLog(roomID string, memberCount int) *RoomActivityLog {
	return &RoomActivityLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: EventMemberJoined,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"member_count": memberCount,
		},
	}
}

func NewMemberLeftLog(roomID string, memberCount int) *RoomActivityLog {
	return &RoomActivityLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: EventMemberLeft,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"member_count": memberCount,
		},
	}
}

func NewRoomClearedLog(roomID string) *RoomActivityLog {
	return &RoomActivityLog{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		EventType: EventRoomCleared,
		Timestamp: time.Now(),
		Metadata:  map[string]any{},
	}
}
