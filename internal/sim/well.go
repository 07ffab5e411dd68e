package sim

import "github.com/vovakirdan/brickwell/internal/core"

// Well is the playing area: walls on the left, right and top, and a shield
// across the bottom gap. The inner box is fixed at construction.
type Well struct {
	bounds    core.Rect
	inner     core.Rect
	outMargin float64
	Shield    Shield
}

// NewWell builds a well from its outer bounds. margin is removed from the
// left and right walls; outMargin is how far below the inner box a body may
// sink before it counts as gone.
func NewWell(bounds core.Rect, margin, outMargin float64) *Well {
	return &Well{
		bounds:    bounds,
		inner:     bounds.Shrink(margin, 0),
		outMargin: outMargin,
	}
}

// Bounds returns the outer rectangle.
func (w *Well) Bounds() core.Rect {
	return w.bounds
}

// Inner returns the collision box.
func (w *Well) Inner() core.Rect {
	return w.inner
}

// IsBelow reports whether p has left the well through the bottom.
func (w *Well) IsBelow(p core.Vector2) bool {
	return p.Y < w.inner.Min.Y-w.outMargin
}
