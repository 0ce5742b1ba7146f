//go:build linux

package mouse

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"stayawake/internal/geometry"
)

const xdotoolTimeout = 2 * time.Second

// xdoController drives the cursor through the xdotool CLI. It honours the
// caller's DISPLAY and falls back to ":0" when none is set.
type xdoController struct {
	path    string
	display string
}

func newController() (Controller, error) {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("%w: xdotool not found: %v", ErrUnsupported, err)
	}

	display := os.Getenv("DISPLAY")
	if display == "" {
		display = ":0"
	}
	return &xdoController{path: path, display: display}, nil
}

func (x *xdoController) run(args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), xdotoolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, x.path, args...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("DISPLAY=%s", x.display))

	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("xdotool %s: %w (output: %s)", args[0], err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func (x *xdoController) Position() (geometry.Point, error) {
	out, err := x.run("getmouselocation", "--shell")
	if err != nil {
		return geometry.Point{}, err
	}
	return parseShellLocation(out)
}

func (x *xdoController) MoveTo(p geometry.Point) error {
	_, err := x.run("mousemove", strconv.Itoa(p.X), strconv.Itoa(p.Y))
	return err
}

// parseShellLocation reads the X= and Y= lines of `xdotool getmouselocation --shell`
func parseShellLocation(out []byte) (geometry.Point, error) {
	var p geometry.Point
	var haveX, haveY bool

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "X":
			v, err := strconv.Atoi(value)
			if err != nil {
				return geometry.Point{}, fmt.Errorf("parse X: %w", err)
			}
			p.X, haveX = v, true
		case "Y":
			v, err := strconv.Atoi(value)
			if err != nil {
				return geometry.Point{}, fmt.Errorf("parse Y: %w", err)
			}
			p.Y, haveY = v, true
		}
	}

	if !haveX || !haveY {
		return geometry.Point{}, fmt.Errorf("unexpected xdotool output %q", string(out))
	}
	return p, nil
}
