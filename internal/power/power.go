// Package power keeps the operating system from suspending while a Lock is held.
//
// Exactly one backend is compiled in per target OS (see power_darwin.go,
// power_windows.go, power_linux.go and power_other.go). Platforms without a
// backend report ErrUnsupportedPlatform from NewManager.
package power

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Reason is the human readable justification shown by OS power tooling
const Reason = "StayAwake is keeping the system awake"

var (
	// ErrUnsupportedPlatform is returned by NewManager when no backend exists for the running OS
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoLockTypes is returned when Lock is called with an empty set
	ErrNoLockTypes = errors.New("no lock types requested")
)

// LockError reports the first lock kind that could not be acquired.
// Kinds acquired earlier in the same call have already been rolled back.
type LockError struct {
	Kind LockType
	Code uint32 // OS level error code, 0 when the platform does not report one
	Err  error

	// Rollback holds failures to clear previously acquired kinds, if any
	Rollback error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("failed to lock %s (code 0x%x): %v", e.Kind, e.Code, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

// RequestError reports a failure to create the platform power request itself
type RequestError struct {
	Code uint32
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to create power request (code 0x%x): %v", e.Code, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// backend acquires the platform inhibition for a set of kinds. The returned
// release function undoes exactly what was acquired.
type backend interface {
	name() string
	acquire(kinds LockSet) (release func() error, err error)
}

// Manager hands out Locks backed by the platform power API
type Manager struct {
	b      backend
	logger *slog.Logger
}

// NewManager returns a Manager for the running OS
func NewManager(logger *slog.Logger) (*Manager, error) {
	return newManager(openBackend, logger)
}

func newManager(open func() (backend, error), logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b, err := open()
	if err != nil {
		return nil, err
	}
	return &Manager{b: b, logger: logger.With("component", "power", "backend", b.name())}, nil
}

// openUnsupported is the backend opener for platforms without power management support
func openUnsupported() (backend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}

// Lock acquires every kind in kinds, in LockSet iteration order.
// On failure no inhibition established by this call remains active.
func (m *Manager) Lock(kinds LockSet) (*Lock, error) {
	if kinds.Len() == 0 {
		return nil, ErrNoLockTypes
	}

	release, err := m.b.acquire(kinds)
	if err != nil {
		var lerr *LockError
		if errors.As(err, &lerr) && lerr.Rollback != nil {
			m.logger.Warn("rollback after failed lock was incomplete", "kind", lerr.Kind, "error", lerr.Rollback)
		}
		return nil, err
	}

	m.logger.Info("power lock acquired", "kinds", kinds.String())
	return &Lock{kinds: kinds, release: release, logger: m.logger}, nil
}

// Lock is a held inhibition. Release it exactly once, typically via defer;
// further calls are no-ops. A Lock may be released from any goroutine.
type Lock struct {
	kinds   LockSet
	release func() error
	logger  *slog.Logger
	once    sync.Once
}

// Kinds returns the set of kinds the lock holds
func (l *Lock) Kinds() LockSet {
	if l == nil {
		return 0
	}
	return l.kinds
}

// Release clears every kind owned by the lock. Failures are logged, not returned.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		if err := l.release(); err != nil {
			l.logger.Warn("power lock released with errors", "kinds", l.kinds.String(), "error", err)
			return
		}
		l.logger.Info("power lock released", "kinds", l.kinds.String())
	})
}
