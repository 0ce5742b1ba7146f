package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"stayawake/internal/geometry"
)

// Duration is a time.Duration that reads either a Go duration string ("90s")
// or a bare integer number of seconds from YAML.
type Duration time.Duration

// Std returns d as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!int" {
		secs, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Area is a working area written as "WIDTHxHEIGHT"
type Area struct {
	geometry.Size
}

func (a Area) MarshalYAML() (any, error) {
	return fmt.Sprintf("%dx%d", a.Width, a.Height), nil
}

func (a *Area) UnmarshalYAML(node *yaml.Node) error {
	w, h, err := ParseDimensions(node.Value)
	if err != nil {
		return fmt.Errorf("[WORKING_AREA ERROR] line %d: %w", node.Line, err)
	}
	a.Size = geometry.Size{Width: w, Height: h}
	return nil
}

// Origin is the working area's top-left corner written as "XxY"
type Origin struct {
	geometry.Point
}

func (o Origin) MarshalYAML() (any, error) {
	return fmt.Sprintf("%dx%d", o.X, o.Y), nil
}

func (o *Origin) UnmarshalYAML(node *yaml.Node) error {
	x, y, err := ParseDimensions(node.Value)
	if err != nil {
		return fmt.Errorf("[INIT_POINT ERROR] line %d: %w", node.Line, err)
	}
	o.Point = geometry.Point{X: x, Y: y}
	return nil
}

// ParseDimensions parses "1024x768" into its two unsigned components
func ParseDimensions(s string) (int, int, error) {
	// Split into at most 3 so that "1x2x3" is rejected rather than folded
	split := strings.SplitN(strings.TrimSpace(s), "x", 3)
	if len(split) != 2 {
		return 0, 0, fmt.Errorf(`expected format: "1024x768"`)
	}

	first, err := strconv.ParseUint(split[0], 10, 31)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing error: %w", err)
	}
	second, err := strconv.ParseUint(split[1], 10, 31)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing error: %w", err)
	}

	return int(first), int(second), nil
}
