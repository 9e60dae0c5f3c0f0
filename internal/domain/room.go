package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkboard/internal/infrastructure/validate"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Room is a named, isolated drawing session. Its command history is the only
// durable state; who is currently connected lives in the ws registry, not here.
type Room struct {
	RoomID       string           `json:"roomId" bson:"roomId"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
	LastActivity time.Time        `json:"lastActivity" bson:"lastActivity"`
	Commands     []DrawingCommand `json:"commands" bson:"commands"`
}

// RoomRepository is the create-or-fetch surface consumed by the REST handlers.
type RoomRepository interface {
	JoinOrCreate(ctx context.Context, roomID string) (*Room, error)
	GetByID(ctx context.Context, roomID string) (*Room, error)
}

// CommandLog is the durability boundary for drawing commands. Anything not
// committed here is lost on restart. Append implicitly refreshes the room's
// inactivity clock; the storage layer evicts rooms idle past its TTL.
type CommandLog interface {
	Append(ctx context.Context, roomID string, cmd DrawingCommand) error
	LoadAll(ctx context.Context, roomID string) ([]DrawingCommand, error)
	Touch(ctx context.Context, roomID string) error
}

func NewRoom(roomID string) *Room {
	now := time.Now().UTC()
	return &Room{
		RoomID:       roomID,
		CreatedAt:    now,
		LastActivity: now,
		Commands:     make([]DrawingCommand, 0),
	}
}

var validateRoomID = validate.Compose(
	validate.Required(),
	validate.MaxLength(64),
	validate.NoSpaces(),
	validate.Matches(`^[A-Z0-9-]+$`, "room id can only contain letters, numbers, and hyphens"),
)

// NormalizeRoomID canonicalizes and validates a client-supplied room id.
// Ids are case-insensitive; the upper-cased form is the canonical one.
func NormalizeRoomID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))

	if err := validateRoomID(id); err != nil {
		return "", errors.Join(ErrInvalidInput, err)
	}

	return id, nil
}
