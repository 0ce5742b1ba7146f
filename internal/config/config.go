// Package config provides configuration management for StayAwake.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stayawake/internal/geometry"
	"stayawake/internal/logging"
	"stayawake/internal/offset"
	"stayawake/internal/power"
)

// DefaultFileName is the config file looked up in the per-user config directory
const DefaultFileName = "config.yaml"

// DotEnvFile is read from the working directory for environment overrides
const DotEnvFile = ".env"

// LockNone disables the power lock when it is the only lock entry
const LockNone = "none"

// Config represents the application configuration
type Config struct {
	// Interval is how long the cursor must stay still before it is nudged
	Interval Duration `yaml:"interval"`

	// JumpByPixelMin and JumpByPixelMax bound a single nudge per axis
	JumpByPixelMin int `yaml:"jump_by_pixel_min"`
	JumpByPixelMax int `yaml:"jump_by_pixel_max"`

	// WorkingArea is the size of the rectangle the cursor is kept in ("1024x768")
	WorkingArea Area `yaml:"working_area"`

	// InitPoint is the top-left corner of the working area ("0x0")
	InitPoint Origin `yaml:"init_point"`

	// Lock lists the power lock kinds to hold, or ["none"]
	Lock []string `yaml:"lock"`

	// Tray shows a system tray icon with Pause and Quit
	Tray bool `yaml:"tray"`

	Log LogConfig `yaml:"log"`
}

// LogConfig defines log verbosity and formatting
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Interval:       Duration(60 * time.Second),
		JumpByPixelMin: 100,
		JumpByPixelMax: 150,
		WorkingArea:    Area{geometry.Size{Width: 800, Height: 800}},
		InitPoint:      Origin{geometry.Point{}},
		Lock:           []string{power.AutomaticSuspend.String()},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Rect returns the absolute rectangle cursor movement is confined to
func (c *Config) Rect() geometry.Rect {
	return geometry.NewRect(c.InitPoint.Point, c.WorkingArea.Size)
}

// JumpRange returns the per-axis nudge bounds
func (c *Config) JumpRange() offset.JumpRange {
	return offset.JumpRange{Min: c.JumpByPixelMin, Max: c.JumpByPixelMax}
}

// LockSet parses Lock. An empty set means no power lock is requested.
func (c *Config) LockSet() (power.LockSet, error) {
	if len(c.Lock) == 1 && strings.EqualFold(strings.TrimSpace(c.Lock[0]), LockNone) {
		return 0, nil
	}
	return power.ParseLockSet(c.Lock)
}

// ValidationError names the offending property
type ValidationError struct {
	Property string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration property `%s` is invalid: %s", e.Property, e.Message)
}

func invalid(property, message string) error {
	return &ValidationError{Property: property, Message: message}
}

// Validate checks the invariants the offset generator relies on
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return invalid("interval", "interval must be positive")
	}
	if c.JumpByPixelMin == 0 {
		return invalid("jump_by_pixel_min", "jump_by_pixel_min cannot be equal to zero")
	}
	if c.JumpByPixelMax == 0 {
		return invalid("jump_by_pixel_max", "jump_by_pixel_max cannot be equal to zero")
	}
	if c.JumpByPixelMin < 0 || c.JumpByPixelMax < 0 {
		return invalid("jump_by_pixel_min", "jump sizes cannot be negative")
	}
	if c.WorkingArea.Width <= 0 || c.WorkingArea.Height <= 0 {
		return invalid("working_area", "working_area dimensions cannot be equal to zero")
	}
	if c.InitPoint.X < 0 || c.InitPoint.Y < 0 {
		return invalid("init_point", "init_point cannot be negative")
	}
	if c.JumpByPixelMin > c.JumpByPixelMax {
		return invalid("jump_by_pixel_min", "jump_by_pixel_min cannot be bigger than jump_by_pixel_max")
	}
	if c.JumpByPixelMin >= c.WorkingArea.Width || c.JumpByPixelMin >= c.WorkingArea.Height {
		return invalid("jump_by_pixel_min", "jump_by_pixel_min cannot be equal or bigger than working_area")
	}
	if c.JumpByPixelMax >= c.WorkingArea.Width || c.JumpByPixelMax >= c.WorkingArea.Height {
		return invalid("jump_by_pixel_max", "jump_by_pixel_max cannot be equal or bigger than working_area")
	}
	if _, err := c.LockSet(); err != nil {
		return invalid("lock", err.Error())
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "console", "json":
	default:
		return invalid("log.format", fmt.Sprintf("unsupported log format %q", c.Log.Format))
	}
	return nil
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	explicit   bool
	dotEnvPath string
	config     *Config
	lookupEnv  func(string) (string, bool)
}

// NewManager creates a configuration manager for path. An empty path selects
// the per-user config file, which may be absent.
func NewManager(path string) (*Manager, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		var err error
		if path, err = getConfigPath(); err != nil {
			return nil, err
		}
	}

	return &Manager{
		configPath: path,
		explicit:   explicit,
		dotEnvPath: DotEnvFile,
		config:     DefaultConfig(),
		lookupEnv:  os.LookupEnv,
	}, nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "stayawake")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "stayawake")
	default:
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(base, "stayawake")
	}

	return filepath.Join(configDir, DefaultFileName), nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration file, then applies environment overrides.
// Variables in the process environment win over those in the .env file.
// A missing config file is only an error when the path was given explicitly;
// a missing .env file is never an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := DefaultConfig()

	data, err := os.ReadFile(m.configPath)
	switch {
	case errors.Is(err, os.ErrNotExist) && !m.explicit:
		// No config file, use defaults
	case err != nil:
		return fmt.Errorf("read config %s: %w", m.configPath, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", m.configPath, err)
		}
	}

	dotEnv, err := readDotEnv(m.dotEnvPath)
	if err != nil {
		return err
	}
	if err := applyEnv(cfg, withDotEnv(m.lookupEnv, dotEnv)); err != nil {
		return err
	}

	m.config = cfg
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Set replaces the current configuration
func (m *Manager) Set(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}

// SetDotEnvPath changes the .env file Load reads. An empty path disables it.
func (m *Manager) SetDotEnvPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dotEnvPath = path
}

// readDotEnv parses path without touching the process environment
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vars, nil
}

// withDotEnv falls back to dotEnv for keys lookup does not know
func withDotEnv(lookup func(string) (string, bool), dotEnv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, ok
		}
		v, ok := dotEnv[key]
		return v, ok
	}
}

// applyEnv overrides cfg with the STAYAWAKE_* / JUMP_BY_PIXEL_* variables
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("STAYAWAKE_INTERVAL"); ok {
		secs, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("STAYAWAKE_INTERVAL: %w", err)
		}
		cfg.Interval = Duration(time.Duration(secs) * time.Second)
	}
	if v, ok := lookup("JUMP_BY_PIXEL_MIN"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("JUMP_BY_PIXEL_MIN: %w", err)
		}
		cfg.JumpByPixelMin = n
	}
	if v, ok := lookup("JUMP_BY_PIXEL_MAX"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("JUMP_BY_PIXEL_MAX: %w", err)
		}
		cfg.JumpByPixelMax = n
	}
	if v, ok := lookup("WORKING_AREA"); ok {
		w, h, err := ParseDimensions(v)
		if err != nil {
			return fmt.Errorf("[WORKING_AREA ERROR] %w", err)
		}
		cfg.WorkingArea = Area{geometry.Size{Width: w, Height: h}}
	}
	if v, ok := lookup("INIT_POINT"); ok {
		x, y, err := ParseDimensions(v)
		if err != nil {
			return fmt.Errorf("[INIT_POINT ERROR] %w", err)
		}
		cfg.InitPoint = Origin{geometry.Point{X: x, Y: y}}
	}
	if v, ok := lookup("STAYAWAKE_LOCK"); ok {
		cfg.Lock = SplitList(v)
	}
	if v, ok := lookup("STAYAWAKE_TRAY"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("STAYAWAKE_TRAY: %w", err)
		}
		cfg.Tray = b
	}
	if v, ok := lookup("STAYAWAKE_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup("STAYAWAKE_LOG_FORMAT"); ok {
		cfg.Log.Format = strings.TrimSpace(v)
	}
	return nil
}

// SplitList splits a comma separated list, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
