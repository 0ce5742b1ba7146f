//go:build linux

package power

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sys/unix"
)

const (
	logindDest  = "org.freedesktop.login1"
	logindPath  = dbus.ObjectPath("/org/freedesktop/login1")
	logindIface = "org.freedesktop.login1.Manager"

	screenSaverDest  = "org.freedesktop.ScreenSaver"
	screenSaverPath  = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	screenSaverIface = "org.freedesktop.ScreenSaver"

	inhibitWho = "stayawake"
)

func openBackend() (backend, error) {
	return linuxBackend{}, nil
}

type linuxBackend struct{}

func (linuxBackend) name() string { return "logind" }

func (linuxBackend) acquire(kinds LockSet) (func() error, error) {
	return acquireFlags(newLogindRequester(), kinds)
}

// inhibitBus is the slice of a D-Bus connection the requester uses
type inhibitBus interface {
	call(dest string, path dbus.ObjectPath, method string, args ...any) *dbus.Call
	Close() error
}

type dbusConn struct {
	*dbus.Conn
}

func (c dbusConn) call(dest string, path dbus.ObjectPath, method string, args ...any) *dbus.Call {
	return c.Object(dest, path).Call(method, 0, args...)
}

func connectSystem() (inhibitBus, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	return dbusConn{conn}, nil
}

func connectSession() (inhibitBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return dbusConn{conn}, nil
}

// logindRequester holds one logind inhibitor fd per suspend kind and a
// screensaver cookie for DisplaySuspend. Bus connections are opened on first use.
type logindRequester struct {
	system  inhibitBus
	session inhibitBus
	fds     map[LockType]int
	cookie  uint32

	connectSystem  func() (inhibitBus, error)
	connectSession func() (inhibitBus, error)
	closeFD        func(int) error
}

func newLogindRequester() *logindRequester {
	return &logindRequester{
		fds:            make(map[LockType]int),
		connectSystem:  connectSystem,
		connectSession: connectSession,
		closeFD:        unix.Close,
	}
}

func (r *logindRequester) set(t LockType) error {
	switch t {
	case AutomaticSuspend, ManualSuspend:
		return r.inhibit(t)
	case DisplaySuspend:
		return r.inhibitScreenSaver()
	default:
		return fmt.Errorf("unsupported lock type %s", t)
	}
}

func logindWhat(t LockType) string {
	if t == ManualSuspend {
		return "sleep"
	}
	return "idle"
}

func (r *logindRequester) inhibit(t LockType) error {
	if r.system == nil {
		bus, err := r.connectSystem()
		if err != nil {
			return fmt.Errorf("connect system bus: %w", err)
		}
		r.system = bus
	}

	var fd dbus.UnixFD
	err := r.system.call(logindDest, logindPath, logindIface+".Inhibit", logindWhat(t), inhibitWho, Reason, "block").
		Store(&fd)
	if err != nil {
		return fmt.Errorf("logind inhibit %s: %w", logindWhat(t), err)
	}
	r.fds[t] = int(fd)
	return nil
}

func (r *logindRequester) inhibitScreenSaver() error {
	if r.session == nil {
		bus, err := r.connectSession()
		if err != nil {
			return fmt.Errorf("connect session bus: %w", err)
		}
		r.session = bus
	}

	err := r.session.call(screenSaverDest, screenSaverPath, screenSaverIface+".Inhibit", inhibitWho, Reason).
		Store(&r.cookie)
	if err != nil {
		return fmt.Errorf("screensaver inhibit: %w", err)
	}
	return nil
}

func (r *logindRequester) clear(t LockType) error {
	if t == DisplaySuspend {
		if r.session == nil {
			return nil
		}
		return r.session.call(screenSaverDest, screenSaverPath, screenSaverIface+".UnInhibit", r.cookie).Err
	}

	fd, ok := r.fds[t]
	if !ok {
		return nil
	}
	delete(r.fds, t)
	// logind drops the inhibitor once the last copy of the fd is closed
	return r.closeFD(fd)
}

func (r *logindRequester) close() error {
	var errs []error
	if r.system != nil {
		errs = append(errs, r.system.Close())
	}
	if r.session != nil {
		errs = append(errs, r.session.Close())
	}
	return errors.Join(errs...)
}
