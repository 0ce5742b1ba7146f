//go:build !darwin && !windows && !linux

package power

func openBackend() (backend, error) {
	return openUnsupported()
}
