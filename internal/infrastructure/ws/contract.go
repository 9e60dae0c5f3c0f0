package ws

import (
	"encoding/json"

	"inkboard/internal/domain"
)

type WSMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// InboundMessage is the client-to-server envelope. Data stays raw until the
// relay knows which payload to decode it into.
type InboundMessage struct {
	Type   string          `json:"type"`
	RoomID string          `json:"roomId,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Payload structs
type DrawStartPayload struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Color       string  `json:"color"`
	StrokeWidth int     `json:"strokeWidth"`
}

type DrawMovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CursorPayload struct {
	UserID   string       `json:"userId,omitempty"`
	Position domain.Point `json:"position"`
}

type RoomUsersPayload struct {
	Users []string `json:"users"`
}

type UserLeftPayload struct {
	UserID string `json:"userId"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Retry   bool   `json:"retry,omitempty"`
}

func NewLoadDrawing(roomID string, commands []domain.DrawingCommand) *WSMessage {
	return &WSMessage{
		Type:   LoadDrawing,
		RoomID: roomID,
		Data:   commands,
	}
}

func NewRoomUsers(roomID string, users []string) *WSMessage {
	return &WSMessage{
		Type:   RoomUsers,
		RoomID: roomID,
		Data:   RoomUsersPayload{Users: users},
	}
}

func NewUserLeft(roomID, userID string) *WSMessage {
	return &WSMessage{
		Type:   UserLeft,
		RoomID: roomID,
		Data:   UserLeftPayload{UserID: userID},
	}
}

func NewDrawStart(roomID string, p DrawStartPayload) *WSMessage {
	return &WSMessage{
		Type:   DrawStart,
		RoomID: roomID,
		Data:   p,
	}
}

func NewDrawMove(roomID string, p DrawMovePayload) *WSMessage {
	return &WSMessage{
		Type:   DrawMove,
		RoomID: roomID,
		Data:   p,
	}
}

func NewDrawEnd(roomID string) *WSMessage {
	return &WSMessage{
		Type:   DrawEnd,
		RoomID: roomID,
	}
}

func NewClearCanvas(roomID string) *WSMessage {
	return &WSMessage{
		Type:   ClearCanvas,
		RoomID: roomID,
	}
}

func NewCursorMove(roomID, userID string, position domain.Point) *WSMessage {
	return &WSMessage{
		Type:   CursorMove,
		RoomID: roomID,
		Data: CursorPayload{
			UserID:   userID,
			Position: position,
		},
	}
}

func NewError(roomID, message string) *WSMessage {
	return &WSMessage{
		Type:   ErrorEvent,
		RoomID: roomID,
		Data: ErrorPayload{
			Message: message,
			Retry:   false,
		},
	}
}

func NewJoinFailed(roomID, reason string) *WSMessage {
	return &WSMessage{
		Type:   ErrorEvent,
		RoomID: roomID,
		Data: ErrorPayload{
			Code:    "JOIN_FAILED",
			Message: reason,
			Retry:   true,
		},
	}
}
