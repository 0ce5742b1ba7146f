// Package offset computes where to nudge an idle cursor so that it moves
// visibly but never leaves the working rectangle.
package offset

import "stayawake/internal/geometry"

// JumpRange bounds, in pixels and per axis, how far a single nudge may move the cursor.
// Callers validate Min > 0, Min <= Max and Max smaller than both rectangle
// dimensions before building a Generator.
type JumpRange struct {
	Min int
	Max int
}

// Generator produces boundary-aware cursor positions.
// It is not safe for concurrent use.
type Generator struct {
	rect geometry.Rect
	jump JumpRange
	src  Source
}

// New creates a generator confined to rect
func New(rect geometry.Rect, jump JumpRange, src Source) *Generator {
	return &Generator{rect: rect, jump: jump, src: src}
}

// Rect returns the rectangle the generator is confined to
func (g *Generator) Rect() geometry.Rect {
	return g.rect
}

// Next returns a position at most Max pixels away from current on each axis,
// always inside the rectangle.
func (g *Generator) Next(current geometry.Point) geometry.Point {
	xOff := g.src.IntRange(g.jump.Min, g.jump.Max)
	yOff := g.src.IntRange(g.jump.Min, g.jump.Max)

	c := g.rect.Clamp(current)

	return geometry.Point{
		X: g.axis(c.X, xOff, g.rect.MinX(), g.rect.MaxX()),
		Y: g.axis(c.Y, yOff, g.rect.MinY(), g.rect.MaxY()),
	}
}

// axis moves v by off inside [lo, hi]. Near an edge the direction points away
// from it, otherwise a fair coin decides.
func (g *Generator) axis(v, off, lo, hi int) int {
	var dir int
	switch {
	case v-off < lo:
		dir = 1
	case v+off > hi:
		dir = -1
	default:
		dir = g.sign()
	}

	// both edges can be in reach in a narrow rectangle
	return geometry.Clamp(v+dir*off, lo, hi)
}

func (g *Generator) sign() int {
	if g.src.IntRange(0, 1) == 1 {
		return 1
	}
	return -1
}
