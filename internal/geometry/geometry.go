// Package geometry describes screen coordinates and the rectangle synthetic
// cursor movement is confined to.
package geometry

import "fmt"

// Point is a screen coordinate in pixels
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is the width and height of the working area
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an absolute, inclusive rectangle anchored at Origin.
// A point p is inside when Origin.X <= p.X <= Origin.X+Width and likewise for Y.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds the permitted rectangle from an origin offset and a working area
func NewRect(origin Point, area Size) Rect {
	return Rect{Origin: origin, Size: area}
}

// MinX returns the lowest permitted X
func (r Rect) MinX() int { return r.Origin.X }

// MaxX returns the highest permitted X
func (r Rect) MaxX() int { return r.Origin.X + r.Size.Width }

// MinY returns the lowest permitted Y
func (r Rect) MinY() int { return r.Origin.Y }

// MaxY returns the highest permitted Y
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.Height }

// Contains reports whether p lies inside the rectangle, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Clamp pulls p onto the nearest point inside the rectangle
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: Clamp(p.X, r.MinX(), r.MaxX()),
		Y: Clamp(p.Y, r.MinY(), r.MaxY()),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d..%d]x[%d..%d]", r.MinX(), r.MaxX(), r.MinY(), r.MaxY())
}

// Clamp limits v to [lo, hi]. lo must not exceed hi.
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
