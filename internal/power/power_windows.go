//go:build windows

package power

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procPowerCreateRequest = kernel32.NewProc("PowerCreateRequest")
	procPowerSetRequest    = kernel32.NewProc("PowerSetRequest")
	procPowerClearRequest  = kernel32.NewProc("PowerClearRequest")
)

const (
	POWER_REQUEST_CONTEXT_VERSION       = 0
	POWER_REQUEST_CONTEXT_SIMPLE_STRING = 0x1

	PowerRequestDisplayRequired  = 0
	PowerRequestSystemRequired   = 1
	PowerRequestAwayModeRequired = 2
)

// REASON_CONTEXT with the union laid out as its Detailed member, whose first
// pointer slot doubles as SimpleReasonString.
type REASON_CONTEXT struct {
	Version            uint32
	Flags              uint32
	SimpleReasonString *uint16
	LocalizedReasonId  uint32
	ReasonStringCount  uint32
	ReasonStrings      **uint16
}

func openBackend() (backend, error) {
	if err := procPowerCreateRequest.Find(); err != nil {
		return nil, fmt.Errorf("%w: PowerCreateRequest unavailable: %v", ErrUnsupportedPlatform, err)
	}
	return windowsBackend{}, nil
}

type windowsBackend struct{}

func (windowsBackend) name() string { return "windows-power-request" }

// acquire creates one power request handle and sets one request type per kind on it
func (windowsBackend) acquire(kinds LockSet) (func() error, error) {
	req, err := newPowerRequest(Reason)
	if err != nil {
		return nil, err
	}
	return acquireFlags(req, kinds)
}

type powerRequest struct {
	h windows.Handle
}

func newPowerRequest(reason string) (*powerRequest, error) {
	text, err := windows.UTF16PtrFromString(reason)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	ctx := REASON_CONTEXT{
		Version:            POWER_REQUEST_CONTEXT_VERSION,
		Flags:              POWER_REQUEST_CONTEXT_SIMPLE_STRING,
		SimpleReasonString: text,
	}

	r1, _, e1 := procPowerCreateRequest.Call(uintptr(unsafe.Pointer(&ctx)))
	runtime.KeepAlive(text)

	h := windows.Handle(r1)
	if h == windows.InvalidHandle || h == 0 {
		return nil, &RequestError{Code: errCode(e1), Err: e1}
	}
	return &powerRequest{h: h}, nil
}

func requestType(t LockType) uintptr {
	switch t {
	case ManualSuspend:
		return PowerRequestAwayModeRequired
	case DisplaySuspend:
		return PowerRequestDisplayRequired
	default:
		return PowerRequestSystemRequired
	}
}

func (p *powerRequest) set(t LockType) error {
	r1, _, e1 := procPowerSetRequest.Call(uintptr(p.h), requestType(t))
	if r1 == 0 {
		return fmt.Errorf("PowerSetRequest: %w", e1)
	}
	return nil
}

func (p *powerRequest) clear(t LockType) error {
	r1, _, e1 := procPowerClearRequest.Call(uintptr(p.h), requestType(t))
	if r1 == 0 {
		return fmt.Errorf("PowerClearRequest: %w", e1)
	}
	return nil
}

func (p *powerRequest) close() error {
	return windows.CloseHandle(p.h)
}
