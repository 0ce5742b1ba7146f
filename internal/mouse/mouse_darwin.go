//go:build darwin

package mouse

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

static bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}

static CGPoint currentMousePosition() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint cursor = CGEventGetLocation(event);
    CFRelease(event);
    return cursor;
}

// Post a real mouse-moved event so the HID idle timer is reset, unlike CGWarpMouseCursorPosition
static void moveMouseTo(CGFloat x, CGFloat y) {
    CGEventRef event = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, CGPointMake(x, y), kCGMouseButtonLeft);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}
*/
import "C"

import (
	"errors"

	"stayawake/internal/geometry"
)

var errNotTrusted = errors.New("accessibility permission not granted; allow this binary in System Settings > Privacy & Security > Accessibility")

type darwinController struct{}

func newController() (Controller, error) {
	return darwinController{}, nil
}

func (darwinController) Position() (geometry.Point, error) {
	p := C.currentMousePosition()
	return geometry.Point{X: int(p.x), Y: int(p.y)}, nil
}

func (darwinController) MoveTo(p geometry.Point) error {
	if !bool(C.hasAccessibilityPermissions()) {
		return errNotTrusted
	}
	C.moveMouseTo(C.CGFloat(p.X), C.CGFloat(p.Y))
	return nil
}
