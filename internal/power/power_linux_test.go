//go:build linux

package power

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type busCall struct {
	method string
	args   []any
}

type fakeBus struct {
	calls  []busCall
	reply  map[string][]any
	errs   map[string]error
	closed int
}

func newFakeBus() *fakeBus {
	return &fakeBus{reply: map[string][]any{}, errs: map[string]error{}}
}

func (b *fakeBus) call(dest string, path dbus.ObjectPath, method string, args ...any) *dbus.Call {
	b.calls = append(b.calls, busCall{method: method, args: args})
	return &dbus.Call{Destination: dest, Path: path, Method: method, Body: b.reply[method], Err: b.errs[method]}
}

func (b *fakeBus) Close() error {
	b.closed++
	return nil
}

type fakeLogind struct {
	system    *fakeBus
	session   *fakeBus
	connects  map[string]int
	closedFDs []int
}

func newFakeLogind() (*fakeLogind, *logindRequester) {
	f := &fakeLogind{system: newFakeBus(), session: newFakeBus(), connects: map[string]int{}}
	f.session.reply[screenSaverIface+".Inhibit"] = []any{uint32(42)}

	r := &logindRequester{
		fds: make(map[LockType]int),
		connectSystem: func() (inhibitBus, error) {
			f.connects["system"]++
			return f.system, nil
		},
		connectSession: func() (inhibitBus, error) {
			f.connects["session"]++
			return f.session, nil
		},
		closeFD: func(fd int) error {
			f.closedFDs = append(f.closedFDs, fd)
			return nil
		},
	}
	return f, r
}

func TestLogindRequesterLifecycle(t *testing.T) {
	f, r := newFakeLogind()

	f.system.reply[logindIface+".Inhibit"] = []any{dbus.UnixFD(7)}
	if err := r.set(AutomaticSuspend); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.system.reply[logindIface+".Inhibit"] = []any{dbus.UnixFD(8)}
	if err := r.set(ManualSuspend); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := r.set(DisplaySuspend); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if f.connects["system"] != 1 || f.connects["session"] != 1 {
		t.Errorf("Expected each bus to be connected once, got %v", f.connects)
	}
	if got := f.system.calls[0].args[0]; got != "idle" {
		t.Errorf("Expected automatic-suspend to inhibit idle, got %v", got)
	}
	if got := f.system.calls[1].args[0]; got != "sleep" {
		t.Errorf("Expected manual-suspend to inhibit sleep, got %v", got)
	}
	if got := f.system.calls[0].args[3]; got != "block" {
		t.Errorf("Expected block mode, got %v", got)
	}
	if r.fds[AutomaticSuspend] != 7 || r.fds[ManualSuspend] != 8 || r.cookie != 42 {
		t.Fatalf("Unexpected bookkeeping fds=%v cookie=%d", r.fds, r.cookie)
	}

	if err := r.clear(DisplaySuspend); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	last := f.session.calls[len(f.session.calls)-1]
	if last.method != screenSaverIface+".UnInhibit" || last.args[0] != uint32(42) {
		t.Errorf("Expected UnInhibit with cookie 42, got %+v", last)
	}

	if err := r.clear(ManualSuspend); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := r.clear(AutomaticSuspend); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	// clearing twice must not close the fd again
	if err := r.clear(AutomaticSuspend); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(f.closedFDs) != 2 || f.closedFDs[0] != 8 || f.closedFDs[1] != 7 {
		t.Errorf("Expected fds 8 then 7 closed once each, got %v", f.closedFDs)
	}
	if len(r.fds) != 0 {
		t.Errorf("Expected no fds left, got %v", r.fds)
	}

	if err := r.close(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if f.system.closed != 1 || f.session.closed != 1 {
		t.Errorf("Expected both buses closed once, got %d and %d", f.system.closed, f.session.closed)
	}
}

func TestLogindRequesterRollback(t *testing.T) {
	f, r := newFakeLogind()
	f.system.reply[logindIface+".Inhibit"] = []any{dbus.UnixFD(9)}
	f.session.errs[screenSaverIface+".Inhibit"] = errors.New("no screensaver")

	_, err := acquireFlags(r, NewLockSet(AutomaticSuspend, DisplaySuspend))

	var lerr *LockError
	if !errors.As(err, &lerr) || lerr.Kind != DisplaySuspend {
		t.Fatalf("Expected LockError for display-suspend, got %v", err)
	}
	if len(f.closedFDs) != 1 || f.closedFDs[0] != 9 {
		t.Errorf("Expected the idle inhibitor fd to be closed, got %v", f.closedFDs)
	}
	if f.system.closed != 1 || f.session.closed != 1 {
		t.Errorf("Expected both buses closed after rollback, got %d and %d", f.system.closed, f.session.closed)
	}
}

func TestLogindRequesterCloseWithoutBuses(t *testing.T) {
	_, r := newFakeLogind()
	if err := r.clear(DisplaySuspend); err != nil {
		t.Errorf("Expected clearing an unset display lock to be a no-op, got %v", err)
	}
	if err := r.close(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
