package domain

import "time"

type CommandType string

const (
	CommandStroke CommandType = "stroke"
	CommandClear  CommandType = "clear"
)

// Point is a single canvas coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Stroke is one continuous pen-down-to-pen-up gesture.
type Stroke struct {
	Path        []Point `json:"path" bson:"path"`
	Color       string  `json:"color" bson:"color"`
	StrokeWidth int     `json:"strokeWidth" bson:"strokeWidth"`
}

// DrawingCommand is one committed entry in a room's command log. Replaying a
// room's commands in commit order fully reconstructs the drawing surface: a
// clear resets accumulated state, later commands layer on top. Commands are
// immutable once committed.
type DrawingCommand struct {
	Type      CommandType `json:"type" bson:"type"`
	Stroke    *Stroke     `json:"stroke,omitempty" bson:"stroke,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

func NewStrokeCommand(stroke Stroke) DrawingCommand {
	return DrawingCommand{
		Type:      CommandStroke,
		Stroke:    &stroke,
		Timestamp: time.Now().UTC(),
	}
}

func NewClearCommand() DrawingCommand {
	return DrawingCommand{
		Type:      CommandClear,
		Timestamp: time.Now().UTC(),
	}
}

// VisibleStrokes replays a command log and returns the strokes still visible
// after the last clear. It is a pure function of the log, so replaying the
// same log twice yields the same surface.
func VisibleStrokes(commands []DrawingCommand) []Stroke {
	visible := make([]Stroke, 0, len(commands))
	for _, cmd := range commands {
		switch cmd.Type {
		case CommandClear:
			visible = visible[:0]
		case CommandStroke:
			if cmd.Stroke != nil {
				visible = append(visible, *cmd.Stroke)
			}
		}
	}
	return visible
}
