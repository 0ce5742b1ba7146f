package power

import (
	"errors"
	"fmt"
	"syscall"
)

// flagRequester is a platform request object whose kinds can be set and
// cleared one at a time.
type flagRequester interface {
	set(t LockType) error
	clear(t LockType) error
	close() error
}

// acquireFlags sets each kind in order. When a kind fails, the kinds already
// set are cleared, the requester is closed and later kinds are not attempted.
func acquireFlags(r flagRequester, kinds LockSet) (func() error, error) {
	held := make([]LockType, 0, kinds.Len())

	for _, t := range kinds.Types() {
		if err := r.set(t); err != nil {
			return nil, &LockError{
				Kind:     t,
				Code:     errCode(err),
				Err:      err,
				Rollback: clearFlags(r, held),
			}
		}
		held = append(held, t)
	}

	return func() error { return clearFlags(r, held) }, nil
}

// clearFlags clears held in reverse order and closes r, continuing past failures
func clearFlags(r flagRequester, held []LockType) error {
	var errs []error
	for i := len(held) - 1; i >= 0; i-- {
		if err := r.clear(held[i]); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", held[i], err))
		}
	}
	if err := r.close(); err != nil {
		errs = append(errs, fmt.Errorf("close request: %w", err))
	}
	return errors.Join(errs...)
}

// codeError carries a raw OS status code that is not an errno
type codeError struct {
	op   string
	code uint32
}

func (e *codeError) Error() string {
	return fmt.Sprintf("%s returned 0x%x", e.op, e.code)
}

// errCode extracts the OS status code from err, or 0
func errCode(err error) uint32 {
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}
