package ws

import "inkboard/internal/domain"

// StrokeBuilder accumulates one in-flight stroke for a single connection. It
// is idle until Start and returns to idle on End or Abort. Move and End while
// idle are ignored; Start while active throws away the unfinished buffer.
type StrokeBuilder struct {
	active bool
	path   []domain.Point
	color  string
	width  int
}

func NewStrokeBuilder() *StrokeBuilder {
	return &StrokeBuilder{}
}

func (b *StrokeBuilder) Active() bool {
	return b.active
}

func (b *StrokeBuilder) Start(x, y float64, color string, width int) {
	b.active = true
	b.path = []domain.Point{{X: x, Y: y}}
	b.color = color
	b.width = width
}

func (b *StrokeBuilder) Move(x, y float64) {
	if !b.active {
		return
	}
	b.path = append(b.path, domain.Point{X: x, Y: y})
}

// End finalizes the stroke. Strokes with fewer than two points are discarded,
// a bare tap leaves no trace in the command log.
func (b *StrokeBuilder) End() (domain.Stroke, bool) {
	if !b.active {
		return domain.Stroke{}, false
	}

	path := b.path
	color := b.color
	width := b.width
	b.reset()

	if len(path) < 2 {
		return domain.Stroke{}, false
	}

	return domain.Stroke{
		Path:        path,
		Color:       color,
		StrokeWidth: width,
	}, true
}

// Abort drops the buffer without committing, used on disconnect mid-stroke.
func (b *StrokeBuilder) Abort() {
	b.reset()
}

func (b *StrokeBuilder) reset() {
	b.active = false
	b.path = nil
	b.color = ""
	b.width = 0
}
