package ws

// Wire event names. Draw events are relayed under the same name they arrive
// with, so a client library only needs one vocabulary.
const (
	JoinRoom    = "join-room"
	LeaveRoom   = "leave-room"
	DrawStart   = "draw-start"
	DrawMove    = "draw-move"
	DrawEnd     = "draw-end"
	ClearCanvas = "clear-canvas"
	CursorMove  = "cursor-move"

	LoadDrawing = "load-drawing"
	RoomUsers   = "room-users"
	UserLeft    = "user-left"

	ErrorEvent = "error"
)
