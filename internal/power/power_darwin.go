//go:build darwin

package power

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <stdlib.h>
#include <IOKit/pwr_mgt/IOPMLib.h>
#include <CoreFoundation/CoreFoundation.h>

static IOReturn createAssertion(const char *kind, const char *reason, IOPMAssertionID *id) {
    CFStringRef cfKind = CFStringCreateWithCString(kCFAllocatorDefault, kind, kCFStringEncodingUTF8);
    CFStringRef cfReason = CFStringCreateWithCString(kCFAllocatorDefault, reason, kCFStringEncodingUTF8);
    IOReturn ret = IOPMAssertionCreateWithName(cfKind, kIOPMAssertionLevelOn, cfReason, id);
    CFRelease(cfKind);
    CFRelease(cfReason);
    return ret;
}
*/
import "C"

import (
	"unsafe"
)

// IOKit assertion type names
const (
	assertionNoDisplaySleep        = "NoDisplaySleepAssertion"
	assertionPreventSystemSleep    = "PreventSystemSleep"
	assertionPreventUserIdleSystem = "PreventUserIdleSystemSleep"
)

func openBackend() (backend, error) {
	return darwinBackend{}, nil
}

type darwinBackend struct{}

func (darwinBackend) name() string { return "iokit-assertion" }

// assertionType picks the single assertion that covers every requested kind
func assertionType(kinds LockSet) string {
	switch {
	case kinds.Has(DisplaySuspend):
		return assertionNoDisplaySleep
	case kinds.Has(ManualSuspend):
		return assertionPreventSystemSleep
	default:
		return assertionPreventUserIdleSystem
	}
}

// acquire creates one assertion for the whole set. IOKit does not report
// per-kind failures, so the error names the first requested kind.
func (darwinBackend) acquire(kinds LockSet) (func() error, error) {
	ckind := C.CString(assertionType(kinds))
	creason := C.CString(Reason)
	defer C.free(unsafe.Pointer(ckind))
	defer C.free(unsafe.Pointer(creason))

	var id C.IOPMAssertionID
	if ret := C.createAssertion(ckind, creason, &id); ret != C.kIOReturnSuccess {
		err := &codeError{op: "IOPMAssertionCreateWithName", code: uint32(ret)}
		return nil, &LockError{Kind: kinds.Types()[0], Code: err.code, Err: err}
	}

	return func() error {
		if ret := C.IOPMAssertionRelease(id); ret != C.kIOReturnSuccess {
			return &codeError{op: "IOPMAssertionRelease", code: uint32(ret)}
		}
		return nil
	}, nil
}
