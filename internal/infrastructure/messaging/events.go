package messaging

import "time"

const (
	RoomsQueue      = "room_activity"
	DeadLetterQueue = "dead_letter_queue"
)

type RoomEventData struct {
	RoomID       string    `json:"roomId"`
	ConnectionID string    `json:"connectionId,omitempty"`
	MemberCount  int       `json:"memberCount,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}
