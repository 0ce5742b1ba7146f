// Package mouse reads and moves the system cursor.
package mouse

import (
	"errors"

	"stayawake/internal/geometry"
)

// ErrUnsupported is returned by New when the platform has no cursor control
var ErrUnsupported = errors.New("mouse control not supported on this platform")

// Controller reads and moves the cursor. Errors from either call are
// transient; callers retry on the next sampling tick.
type Controller interface {
	Position() (geometry.Point, error)
	MoveTo(p geometry.Point) error
}

// New returns the cursor controller for the running OS
func New() (Controller, error) {
	return newController()
}
