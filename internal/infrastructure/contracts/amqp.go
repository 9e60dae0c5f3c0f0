package contracts

// AmqpMessage is the broker envelope. Data holds the event payload as raw
// JSON so consumers can pick the concrete type from the routing key.
type AmqpMessage struct {
	RoomID string `json:"roomId"`
	Data   []byte `json:"data"`
}

// Routing keys on the room topic exchange.
const (
	EventRoomCreated  = "room.created"
	EventMemberJoined = "member.joined"
	EventMemberLeft   = "member.left"
	EventRoomCleared  = "room.cleared"
)
