//go:build !darwin && !windows && !linux

package mouse

func newController() (Controller, error) {
	return nil, ErrUnsupported
}
