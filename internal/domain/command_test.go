package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stroke(points ...Point) DrawingCommand {
	return NewStrokeCommand(Stroke{Path: points, Color: "#000000", StrokeWidth: 2})
}

func TestVisibleStrokes_ClearResetsSurface(t *testing.T) {
	req := require.New(t)

	log := []DrawingCommand{
		stroke(Point{X: 1, Y: 1}, Point{X: 2, Y: 2}),
		stroke(Point{X: 3, Y: 3}, Point{X: 4, Y: 4}),
		NewClearCommand(),
		stroke(Point{X: 5, Y: 5}, Point{X: 6, Y: 6}),
	}

	visible := VisibleStrokes(log)
	req.Len(visible, 1)
	req.Equal([]Point{{X: 5, Y: 5}, {X: 6, Y: 6}}, visible[0].Path)
}

func TestVisibleStrokes_Deterministic(t *testing.T) {
	req := require.New(t)

	log := []DrawingCommand{
		stroke(Point{X: 1, Y: 1}, Point{X: 2, Y: 2}),
		NewClearCommand(),
		stroke(Point{X: 3, Y: 3}, Point{X: 4, Y: 4}),
		stroke(Point{X: 5, Y: 5}, Point{X: 6, Y: 6}),
	}

	req.Equal(VisibleStrokes(log), VisibleStrokes(log))
}

func TestVisibleStrokes_EmptyLog(t *testing.T) {
	require.Empty(t, VisibleStrokes(nil))
	require.Empty(t, VisibleStrokes([]DrawingCommand{NewClearCommand()}))
}
