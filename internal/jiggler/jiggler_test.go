package jiggler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stayawake/internal/geometry"
)

type fakeController struct {
	mu        sync.Mutex
	positions []geometry.Point
	posErr    error
	moveErr   error
	moves     []geometry.Point
}

func (f *fakeController) Position() (geometry.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.posErr != nil {
		return geometry.Point{}, f.posErr
	}
	p := f.positions[0]
	if len(f.positions) > 1 {
		f.positions = f.positions[1:]
	}
	return p, nil
}

func (f *fakeController) MoveTo(p geometry.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves = append(f.moves, p)
	f.positions = []geometry.Point{p}
	return nil
}

func (f *fakeController) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves)
}

type shiftMover struct {
	got []geometry.Point
}

func (m *shiftMover) Next(p geometry.Point) geometry.Point {
	m.got = append(m.got, p)
	return geometry.Point{X: p.X + 10, Y: p.Y + 10}
}

func TestTickMovesIdleCursor(t *testing.T) {
	ctrl := &fakeController{positions: []geometry.Point{{X: 5, Y: 5}}}
	gen := &shiftMover{}
	j := New(ctrl, gen, time.Second, nil)

	var notified geometry.Point
	j.SetOnMove(func(p geometry.Point) { notified = p })

	j.tick(geometry.Point{X: 5, Y: 5})

	if len(ctrl.moves) != 1 || ctrl.moves[0] != (geometry.Point{X: 15, Y: 15}) {
		t.Fatalf("Expected one move to (15,15), got %v", ctrl.moves)
	}
	if len(gen.got) != 1 || gen.got[0] != (geometry.Point{X: 5, Y: 5}) {
		t.Errorf("Expected generator to see second sample (5,5), got %v", gen.got)
	}
	if notified != (geometry.Point{X: 15, Y: 15}) {
		t.Errorf("Expected move callback with (15,15), got %v", notified)
	}
	if s := j.Stats(); s.Ticks != 1 || s.Moves != 1 || s.Errors != 0 {
		t.Errorf("Unexpected stats %+v", s)
	}
}

func TestTickSkipsWhenUserMoved(t *testing.T) {
	ctrl := &fakeController{positions: []geometry.Point{{X: 6, Y: 5}}}
	j := New(ctrl, &shiftMover{}, time.Second, nil)

	j.tick(geometry.Point{X: 5, Y: 5})

	if len(ctrl.moves) != 0 {
		t.Errorf("Expected no move after user activity, got %v", ctrl.moves)
	}
}

func TestTickPaused(t *testing.T) {
	ctrl := &fakeController{positions: []geometry.Point{{X: 5, Y: 5}}}
	j := New(ctrl, &shiftMover{}, time.Second, nil)

	j.Pause()
	if !j.Paused() {
		t.Fatal("Expected Paused to report true")
	}
	j.tick(geometry.Point{X: 5, Y: 5})
	if len(ctrl.moves) != 0 {
		t.Errorf("Expected no move while paused, got %v", ctrl.moves)
	}

	j.Resume()
	j.tick(geometry.Point{X: 5, Y: 5})
	if len(ctrl.moves) != 1 {
		t.Errorf("Expected one move after resume, got %v", ctrl.moves)
	}
}

func TestTickErrorsAreCounted(t *testing.T) {
	ctrl := &fakeController{posErr: errors.New("no display")}
	j := New(ctrl, &shiftMover{}, time.Second, nil)

	j.tick(geometry.Point{})

	ctrl.posErr = nil
	ctrl.positions = []geometry.Point{{}}
	ctrl.moveErr = errors.New("denied")
	j.tick(geometry.Point{})

	if s := j.Stats(); s.Ticks != 2 || s.Moves != 0 || s.Errors != 2 {
		t.Errorf("Expected 2 ticks and 2 errors, got %+v", s)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctrl := &fakeController{positions: []geometry.Point{{X: 1, Y: 1}}}
	j := New(ctrl, &shiftMover{}, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for ctrl.moveCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 3 moves, got %d", ctrl.moveCount())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error on cancel, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// slowController records when the cursor is sampled and takes moveDelay to move
type slowController struct {
	mu        sync.Mutex
	samples   []time.Time
	moveDelay time.Duration
}

func (s *slowController) Position() (geometry.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, time.Now())
	return geometry.Point{X: 10, Y: 10}, nil
}

func (s *slowController) MoveTo(geometry.Point) error {
	time.Sleep(s.moveDelay)
	return nil
}

func (s *slowController) sampleTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.samples...)
}

func TestRunWaitsFullIntervalAfterSlowMove(t *testing.T) {
	const interval = 40 * time.Millisecond
	ctrl := &slowController{moveDelay: 3 * interval}
	j := New(ctrl, &shiftMover{}, interval, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for j.Stats().Moves < 4 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 4 moves, got %d", j.Stats().Moves)
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	// Samples come in pairs: before the wait and after it
	samples := ctrl.sampleTimes()
	for i := 0; i+1 < len(samples); i += 2 {
		if gap := samples[i+1].Sub(samples[i]); gap < interval {
			t.Errorf("Expected at least %v between samples %d and %d, got %v", interval, i, i+1, gap)
		}
	}
}
