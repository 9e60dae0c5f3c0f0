package ws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"inkboard/internal/domain"
)

func TestStrokeBuilder_FullStroke(t *testing.T) {
	req := require.New(t)
	b := NewStrokeBuilder()

	b.Start(10, 10, "#ff0000", 3)
	b.Move(20, 25)
	b.Move(30, 40)

	stroke, ok := b.End()
	req.True(ok)
	req.Equal([]domain.Point{{X: 10, Y: 10}, {X: 20, Y: 25}, {X: 30, Y: 40}}, stroke.Path)
	req.Equal("#ff0000", stroke.Color)
	req.Equal(3, stroke.StrokeWidth)
	req.False(b.Active())
}

func TestStrokeBuilder_SinglePointDiscarded(t *testing.T) {
	req := require.New(t)
	b := NewStrokeBuilder()

	b.Start(10, 10, "#000000", 2)

	_, ok := b.End()
	req.False(ok)
	req.False(b.Active())
}

func TestStrokeBuilder_IdleMoveAndEndIgnored(t *testing.T) {
	req := require.New(t)
	b := NewStrokeBuilder()

	b.Move(10, 10)
	_, ok := b.End()
	req.False(ok)

	// A later stroke is unaffected by the stray events
	b.Start(1, 1, "#000000", 1)
	b.Move(2, 2)
	stroke, ok := b.End()
	req.True(ok)
	req.Len(stroke.Path, 2)
}

func TestStrokeBuilder_RestartDiscardsUnfinishedBuffer(t *testing.T) {
	req := require.New(t)
	b := NewStrokeBuilder()

	b.Start(1, 1, "#111111", 1)
	b.Move(2, 2)
	b.Move(3, 3)

	b.Start(50, 50, "#222222", 5)
	b.Move(60, 60)

	stroke, ok := b.End()
	req.True(ok)
	req.Equal([]domain.Point{{X: 50, Y: 50}, {X: 60, Y: 60}}, stroke.Path)
	req.Equal("#222222", stroke.Color)
}

func TestStrokeBuilder_Abort(t *testing.T) {
	req := require.New(t)
	b := NewStrokeBuilder()

	b.Start(1, 1, "#111111", 1)
	b.Move(2, 2)
	b.Abort()

	req.False(b.Active())
	_, ok := b.End()
	req.False(ok)
}
