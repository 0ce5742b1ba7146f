// Package jiggler drives the sample/compare/move loop that keeps the cursor alive.
package jiggler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"stayawake/internal/geometry"
	"stayawake/internal/logging"
	"stayawake/internal/mouse"
)

// Mover computes the next cursor target from the current position
type Mover interface {
	Next(current geometry.Point) geometry.Point
}

// Stats counts what the loop has done since Run started
type Stats struct {
	Ticks  uint64
	Moves  uint64
	Errors uint64
}

// Jiggler nudges the cursor whenever it has not moved for a full interval
type Jiggler struct {
	ctrl     mouse.Controller
	gen      Mover
	interval time.Duration
	logger   *slog.Logger

	paused atomic.Bool
	ticks  atomic.Uint64
	moves  atomic.Uint64
	errs   atomic.Uint64

	// onMove is called after every successful move
	onMove func(geometry.Point)
}

// New creates a Jiggler. interval must be positive.
func New(ctrl mouse.Controller, gen Mover, interval time.Duration, logger *slog.Logger) *Jiggler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jiggler{
		ctrl:     ctrl,
		gen:      gen,
		interval: interval,
		logger:   logger.With("component", "jiggler"),
	}
}

// SetOnMove sets the callback invoked after each synthetic move
func (j *Jiggler) SetOnMove(callback func(geometry.Point)) {
	j.onMove = callback
}

// Pause stops moves until Resume. Sampling continues.
func (j *Jiggler) Pause() {
	if !j.paused.Swap(true) {
		j.logger.Info("paused")
	}
}

// Resume re-enables moves
func (j *Jiggler) Resume() {
	if j.paused.Swap(false) {
		j.logger.Info("resumed")
	}
}

// Paused reports whether moves are suspended
func (j *Jiggler) Paused() bool {
	return j.paused.Load()
}

// Stats returns a snapshot of the loop counters
func (j *Jiggler) Stats() Stats {
	return Stats{
		Ticks:  j.ticks.Load(),
		Moves:  j.moves.Load(),
		Errors: j.errs.Load(),
	}
}

// Run samples the cursor, waits one full interval and samples again. If both
// samples match, the cursor is moved to the generator's next point. Run
// returns nil once ctx is cancelled.
func (j *Jiggler) Run(ctx context.Context) error {
	timer := time.NewTimer(j.interval)
	defer timer.Stop()

	j.logger.Info("started", "interval", j.interval)

	for {
		before, err := j.ctrl.Position()
		if err != nil {
			j.errs.Add(1)
			j.logger.Debug("failed to read cursor position", "error", err)
		}

		// the wait starts after the first sample, however long the previous tick took
		timer.Reset(j.interval)
		select {
		case <-ctx.Done():
			j.logger.Info("stopped", "moves", j.moves.Load())
			return nil
		case <-timer.C:
		}

		if err != nil {
			continue
		}
		j.tick(before)
	}
}

func (j *Jiggler) tick(before geometry.Point) {
	j.ticks.Add(1)

	current, err := j.ctrl.Position()
	if err != nil {
		j.errs.Add(1)
		j.logger.Debug("failed to read cursor position", "error", err)
		return
	}

	if j.paused.Load() {
		logging.Trace(j.logger, "tick skipped while paused", "position", current)
		return
	}

	if before != current {
		logging.Trace(j.logger, "cursor moved by user", "from", before, "to", current)
		return
	}

	target := j.gen.Next(current)
	if err := j.ctrl.MoveTo(target); err != nil {
		j.errs.Add(1)
		j.logger.Debug("failed to move cursor", "target", target, "error", err)
		return
	}

	j.moves.Add(1)
	logging.Trace(j.logger, "cursor moved", "from", current, "to", target)
	if j.onMove != nil {
		j.onMove(target)
	}
}
