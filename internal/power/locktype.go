package power

import (
	"fmt"
	"strings"
)

// LockType is a category of suspension to inhibit
type LockType uint8

const (
	// AutomaticSuspend inhibits idle-triggered system sleep
	AutomaticSuspend LockType = 1 << iota
	// ManualSuspend inhibits user or policy initiated sleep where the platform allows it
	ManualSuspend
	// DisplaySuspend keeps the display from turning off
	DisplaySuspend
)

// allTypes is the fixed acquisition order
var allTypes = []LockType{AutomaticSuspend, ManualSuspend, DisplaySuspend}

func (t LockType) String() string {
	switch t {
	case AutomaticSuspend:
		return "automatic-suspend"
	case ManualSuspend:
		return "manual-suspend"
	case DisplaySuspend:
		return "display-suspend"
	default:
		return fmt.Sprintf("LockType(%d)", uint8(t))
	}
}

// ParseLockType accepts the names produced by LockType.String
func ParseLockType(s string) (LockType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range allTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown lock type %q", s)
}

// LockSet is a set of lock types
type LockSet uint8

// NewLockSet builds a set from the given types
func NewLockSet(types ...LockType) LockSet {
	var s LockSet
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

// ParseLockSet parses a list of lock type names. Duplicates are ignored.
func ParseLockSet(names []string) (LockSet, error) {
	var s LockSet
	for _, n := range names {
		t, err := ParseLockType(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(t)
	}
	return s, nil
}

// Add returns s with t included
func (s LockSet) Add(t LockType) LockSet { return s | LockSet(t) }

// Has reports whether t is in s
func (s LockSet) Has(t LockType) bool { return s&LockSet(t) != 0 }

// Len returns the number of types in s
func (s LockSet) Len() int { return len(s.Types()) }

// Types lists the members of s in acquisition order
func (s LockSet) Types() []LockType {
	var out []LockType
	for _, t := range allTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s LockSet) String() string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}
