//go:build !windows

package autostart

import (
	"os"
	"path/filepath"
	"runtime"
)

// item returns the login item for the running OS: a launchd agent on macOS
// and an XDG autostart entry elsewhere.
func item() (fileItem, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fileItem{}, err
		}
		return fileItem{
			path:   filepath.Join(home, "Library", "LaunchAgents", Label+".plist"),
			render: renderLaunchAgent,
		}, nil
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fileItem{}, err
		}
		base = filepath.Join(home, ".config")
	}
	return fileItem{
		path:   filepath.Join(base, "autostart", "stayawake.desktop"),
		render: renderDesktopEntry,
	}, nil
}

func enable(e Entry) error {
	it, err := item()
	if err != nil {
		return err
	}
	return it.install(e)
}

func disable() error {
	it, err := item()
	if err != nil {
		return err
	}
	return it.remove()
}

func isEnabled() (bool, error) {
	it, err := item()
	if err != nil {
		return false, err
	}
	return it.exists()
}

func location() (string, error) {
	it, err := item()
	if err != nil {
		return "", err
	}
	return it.path, nil
}
