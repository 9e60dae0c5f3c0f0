package rooms

import (
	"time"

	"inkboard/internal/domain"
)

type joinRoomRequest struct {
	RoomID string `json:"roomId" example:"ABC123"`
}

type roomPayload struct {
	RoomID       string                  `json:"roomId" example:"ABC123"`
	CreatedAt    time.Time               `json:"createdAt"`
	LastActivity time.Time               `json:"lastActivity"`
	Commands     []domain.DrawingCommand `json:"commands"`
	StrokeCount  int                     `json:"strokeCount" example:"4"`
}

type roomResponse struct {
	Success bool        `json:"success" example:"true"`
	Room    roomPayload `json:"room"`
}

func newRoomResponse(room *domain.Room) roomResponse {
	commands := room.Commands
	if commands == nil {
		commands = []domain.DrawingCommand{}
	}

	return roomResponse{
		Success: true,
		Room: roomPayload{
			RoomID:       room.RoomID,
			CreatedAt:    room.CreatedAt,
			LastActivity: room.LastActivity,
			Commands:     commands,
			StrokeCount:  len(domain.VisibleStrokes(commands)),
		},
	}
}
