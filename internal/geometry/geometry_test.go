package geometry

import "testing"

func TestRectBounds(t *testing.T) {
	r := NewRect(Point{X: 50, Y: 10}, Size{Width: 51, Height: 20})

	if r.MinX() != 50 || r.MaxX() != 101 {
		t.Errorf("Expected X range [50,101], got [%d,%d]", r.MinX(), r.MaxX())
	}
	if r.MinY() != 10 || r.MaxY() != 30 {
		t.Errorf("Expected Y range [10,30], got [%d,%d]", r.MinY(), r.MaxY())
	}
}

func TestRectClamp(t *testing.T) {
	r := NewRect(Point{X: 50, Y: 50}, Size{Width: 51, Height: 51})

	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"inside", Point{X: 60, Y: 70}, Point{X: 60, Y: 70}},
		{"below origin", Point{X: 0, Y: 0}, Point{X: 50, Y: 50}},
		{"beyond far edge", Point{X: 500, Y: 101}, Point{X: 101, Y: 101}},
		{"mixed", Point{X: -3, Y: 200}, Point{X: 50, Y: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Clamp(tt.in)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if !r.Contains(got) {
				t.Errorf("Expected clamped point %v to be inside %v", got, r)
			}
		})
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := NewRect(Point{}, Size{Width: 800, Height: 800})

	for _, p := range []Point{{0, 0}, {800, 800}, {0, 800}, {800, 0}} {
		if !r.Contains(p) {
			t.Errorf("Expected edge point %v to be inside", p)
		}
	}
	for _, p := range []Point{{-1, 0}, {801, 5}, {5, 801}} {
		if r.Contains(p) {
			t.Errorf("Expected %v to be outside", p)
		}
	}
}
