package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"stayawake/internal/config"
	"stayawake/internal/geometry"
	"stayawake/internal/jiggler"
	"stayawake/internal/logging"
	"stayawake/internal/mouse"
	"stayawake/internal/offset"
	"stayawake/internal/power"
	"stayawake/internal/tray"
	"stayawake/internal/ui"
)

// runOptions holds the flags shared by the root and run commands
type runOptions struct {
	configPath  string
	interval    time.Duration
	jumpMin     int
	jumpMax     int
	workingArea string
	initPoint   string
	lock        []string
	noLock      bool
	tray        bool
	logLevel    string
	logFormat   string
}

func (o *runOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Config file (default: per-user config directory)")
	fs.DurationVar(&o.interval, "interval", 0, "How long the cursor must stay still before it is moved (e.g. 60s)")
	fs.IntVar(&o.jumpMin, "jump-min", 0, "Minimum jump per axis in pixels")
	fs.IntVar(&o.jumpMax, "jump-max", 0, "Maximum jump per axis in pixels")
	fs.StringVar(&o.workingArea, "working-area", "", `Working area size, e.g. "1024x768"`)
	fs.StringVar(&o.initPoint, "init-point", "", `Top-left corner of the working area, e.g. "0x0"`)
	fs.StringSliceVar(&o.lock, "lock", nil, "Power lock kinds: automatic-suspend, manual-suspend, display-suspend")
	fs.BoolVar(&o.noLock, "no-lock", false, "Do not hold a power lock")
	fs.BoolVar(&o.tray, "tray", false, "Show a system tray icon")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: text or json")
}

// apply overrides cfg with every flag the user set explicitly
func (o *runOptions) apply(cfg *config.Config, fs *pflag.FlagSet) error {
	if fs.Changed("interval") {
		cfg.Interval = config.Duration(o.interval)
	}
	if fs.Changed("jump-min") {
		cfg.JumpByPixelMin = o.jumpMin
	}
	if fs.Changed("jump-max") {
		cfg.JumpByPixelMax = o.jumpMax
	}
	if fs.Changed("working-area") {
		w, h, err := config.ParseDimensions(o.workingArea)
		if err != nil {
			return fmt.Errorf("--working-area: %w", err)
		}
		cfg.WorkingArea = config.Area{Size: geometry.Size{Width: w, Height: h}}
	}
	if fs.Changed("init-point") {
		x, y, err := config.ParseDimensions(o.initPoint)
		if err != nil {
			return fmt.Errorf("--init-point: %w", err)
		}
		cfg.InitPoint = config.Origin{Point: geometry.Point{X: x, Y: y}}
	}
	if fs.Changed("lock") {
		cfg.Lock = o.lock
	}
	if o.noLock {
		cfg.Lock = []string{config.LockNone}
	}
	if fs.Changed("tray") {
		cfg.Tray = o.tray
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	return nil
}

// load resolves defaults, the config file, the environment and flags, in that order
func (o *runOptions) load(fs *pflag.FlagSet) (*config.Manager, *config.Config, error) {
	mgr, err := config.NewManager(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	cfg := mgr.Get()
	if err := o.apply(cfg, fs); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	return mgr, cfg, nil
}

func init() {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run StayAwake in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	opts.bind(cmd.Flags())
	rootCmd.AddCommand(cmd)
}

// locker hands out power locks
type locker interface {
	Lock(kinds power.LockSet) (*power.Lock, error)
}

// platform is the OS facing side of a run
type platform struct {
	openPower func(*slog.Logger) (locker, error)
	newMouse  func() (mouse.Controller, error)
	source    offset.Source
}

func nativePlatform() platform {
	return platform{
		openPower: func(logger *slog.Logger) (locker, error) {
			pm, err := power.NewManager(logger)
			if err != nil {
				return nil, err
			}
			return pm, nil
		},
		newMouse: mouse.New,
		source:   offset.NewTimeSource(),
	}
}

// session is everything a run holds between startup and shutdown
type session struct {
	lock    *power.Lock
	jiggler *jiggler.Jiggler
	summary ui.Summary
}

// startSession takes the power lock and builds the jiggler. Only a missing
// cursor controller is fatal.
func startSession(cfg *config.Config, configPath string, p platform, logger *slog.Logger) (*session, error) {
	lock, lockWarning := acquireLock(cfg, p.openPower, logger)

	ctrl, err := p.newMouse()
	if err != nil {
		lock.Release()
		return nil, err
	}

	gen := offset.New(cfg.Rect(), cfg.JumpRange(), p.source)
	j := jiggler.New(ctrl, gen, cfg.Interval.Std(), logger)

	lockDesc := "none"
	if lock != nil {
		lockDesc = lock.Kinds().String()
	}

	return &session{
		lock:    lock,
		jiggler: j,
		summary: ui.Summary{
			Version:     version,
			Interval:    cfg.Interval.String(),
			Rect:        gen.Rect().String(),
			Jump:        fmt.Sprintf("%d..%d px", cfg.JumpByPixelMin, cfg.JumpByPixelMax),
			Lock:        lockDesc,
			ConfigPath:  configPath,
			Tray:        cfg.Tray,
			LockWarning: lockWarning,
		},
	}, nil
}

func run(cmd *cobra.Command, opts *runOptions) error {
	mgr, cfg, err := opts.load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	s, err := startSession(cfg, mgr.Path(), nativePlatform(), logger)
	if err != nil {
		return err
	}
	defer s.lock.Release()

	if err := ui.PrintBanner(cmd.ErrOrStderr(), s.summary); err != nil {
		logger.Debug("failed to print banner", "error", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tray {
		return runWithTray(ctx, stop, s.jiggler, s.summary.Lock, logger)
	}
	return s.jiggler.Run(ctx)
}

// acquireLock takes the configured power lock. Failures are logged and
// returned as a warning; StayAwake keeps running without the lock.
func acquireLock(cfg *config.Config, open func(*slog.Logger) (locker, error), logger *slog.Logger) (*power.Lock, string) {
	kinds, err := cfg.LockSet()
	if err != nil || kinds.Len() == 0 {
		return nil, ""
	}

	pm, err := open(logger)
	if err != nil {
		if errors.Is(err, power.ErrUnsupportedPlatform) {
			logger.Warn("power lock not available on this platform")
		} else {
			logger.Warn("failed to open power manager", "error", err)
		}
		return nil, err.Error()
	}

	lock, err := pm.Lock(kinds)
	if err != nil {
		logger.Warn("failed to acquire power lock", "kinds", kinds, "error", err)
		return nil, err.Error()
	}
	return lock, ""
}

// runWithTray runs the tray on the calling goroutine, which must be the main
// one, and the jiggler loop alongside it.
func runWithTray(ctx context.Context, cancel context.CancelFunc, j *jiggler.Jiggler, lockDesc string, logger *slog.Logger) error {
	var (
		t      *tray.Tray
		status int
		pause  int
	)

	t = tray.New("StayAwake", "StayAwake: keeping this computer awake", func() {
		logger.Debug("tray ready")
	})
	status = t.AddLabel("Moves: 0")
	t.AddLabel("Lock: " + lockDesc)
	t.AddSeparator()
	pause = t.AddCheckbox("Pause", "Stop moving the cursor", false, func() {
		if t.Checked(pause) {
			j.Resume()
		} else {
			j.Pause()
		}
		t.SetItemChecked(pause, j.Paused())
	})
	t.AddSeparator()
	t.AddMenuItem("Quit", "Quit StayAwake", cancel)

	j.SetOnMove(func(geometry.Point) {
		t.SetItemTitle(status, fmt.Sprintf("Moves: %d", j.Stats().Moves))
	})

	done := make(chan error, 1)
	go func() {
		done <- j.Run(ctx)
		t.Stop()
	}()

	t.Run()
	cancel()
	return <-done
}
