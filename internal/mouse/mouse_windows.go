//go:build windows

package mouse

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"stayawake/internal/geometry"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procSendInput    = user32.NewProc("SendInput")
)

const (
	INPUT_MOUSE      = 0
	MOUSEEVENTF_MOVE = 0x0001
)

type POINT struct {
	X int32
	Y int32
}

type MOUSEINPUT struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// INPUT with the mouse member of the union. MOUSEINPUT is the largest member,
// so no trailing padding is needed for cbSize to match sizeof(INPUT).
type INPUT struct {
	Type uint32
	Mi   MOUSEINPUT
}

type windowsController struct{}

func newController() (Controller, error) {
	if err := procSetCursorPos.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return windowsController{}, nil
}

func (windowsController) Position() (geometry.Point, error) {
	var pt POINT
	r1, _, e1 := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r1 == 0 {
		return geometry.Point{}, fmt.Errorf("GetCursorPos: %w", e1)
	}
	return geometry.Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

// MoveTo warps the cursor, then injects a zero-length relative move so the
// system registers input activity.
func (windowsController) MoveTo(p geometry.Point) error {
	r1, _, e1 := procSetCursorPos.Call(uintptr(int32(p.X)), uintptr(int32(p.Y)))
	if r1 == 0 {
		return fmt.Errorf("SetCursorPos: %w", e1)
	}

	var input INPUT
	input.Type = INPUT_MOUSE
	input.Mi.DwFlags = MOUSEEVENTF_MOVE

	n, _, e1 := procSendInput.Call(1, uintptr(unsafe.Pointer(&input)), unsafe.Sizeof(input))
	if n != 1 {
		return fmt.Errorf("SendInput: %w", e1)
	}
	return nil
}
