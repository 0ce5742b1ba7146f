package tray

import (
	"encoding/binary"
	"testing"
)

func TestMenuBuilding(t *testing.T) {
	tr := New("StayAwake", "tooltip", nil)

	status := tr.AddLabel("Idle")
	tr.AddSeparator()
	pause := tr.AddCheckbox("Pause", "", false, func() {})
	quit := tr.AddMenuItem("Quit", "", func() {})

	if status != 0 || pause != 2 || quit != 3 {
		t.Errorf("Expected ids 0,2,3, got %d,%d,%d", status, pause, quit)
	}

	tr.SetItemChecked(pause, true)
	if !tr.Checked(pause) {
		t.Error("Expected pause item to be checked")
	}

	// Only checkbox items carry a check mark
	tr.SetItemChecked(quit, true)
	if tr.Checked(quit) {
		t.Error("Expected quit item to stay unchecked")
	}

	tr.SetItemTitle(status, "Moves: 3")
	if got := tr.lookup(status).Title; got != "Moves: 3" {
		t.Errorf("Expected updated title, got %q", got)
	}

	if tr.lookup(1) != nil || tr.lookup(99) != nil {
		t.Error("Expected nil for separator and out of range ids")
	}
}

func TestIconHeader(t *testing.T) {
	icon := Icon()
	le := binary.LittleEndian

	if le.Uint16(icon[2:]) != 1 || le.Uint16(icon[4:]) != 1 {
		t.Fatalf("Expected single icon ICO header, got % x", icon[:6])
	}

	size := le.Uint32(icon[14:])
	offset := le.Uint32(icon[18:])
	if int(size+offset) != len(icon) {
		t.Errorf("Expected size+offset %d to equal file length %d", size+offset, len(icon))
	}

	// Center pixel is opaque, corner is transparent
	pixels := icon[offset+40:]
	center := (8*iconSize + 8) * 4
	if pixels[center+3] != 0xff {
		t.Errorf("Expected opaque center pixel, got alpha %#x", pixels[center+3])
	}
	if pixels[3] != 0 {
		t.Errorf("Expected transparent corner pixel, got alpha %#x", pixels[3])
	}
}
