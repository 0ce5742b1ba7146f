// Package ui renders the terminal startup summary.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Summary is what StayAwake prints once at startup
type Summary struct {
	Version     string
	Interval    string
	Rect        string
	Jump        string
	Lock        string
	ConfigPath  string
	Tray        bool
	LockWarning string
}

type row struct{ key, value string }

func (s Summary) rows() []row {
	rows := []row{
		{"interval", s.Interval},
		{"area", s.Rect},
		{"jump", s.Jump},
		{"lock", s.Lock},
	}
	if s.ConfigPath != "" {
		rows = append(rows, row{"config", s.ConfigPath})
	}
	if s.Tray {
		rows = append(rows, row{"tray", "on"})
	}
	return rows
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the summary to w, styled when w is a terminal
func PrintBanner(w io.Writer, s Summary) error {
	var out string
	if IsTerminal(w) {
		out = renderStyled(lipgloss.NewRenderer(w), s)
	} else {
		out = renderPlain(s)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func renderPlain(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "StayAwake %s", s.Version)
	for _, r := range s.rows() {
		fmt.Fprintf(&b, "\n  %-8s %s", r.key, r.value)
	}
	if s.LockWarning != "" {
		fmt.Fprintf(&b, "\n  warning: %s", s.LockWarning)
	}
	return b.String()
}

func renderStyled(r *lipgloss.Renderer, s Summary) string {
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	key := r.NewStyle().Foreground(lipgloss.Color("244")).Width(9)
	value := r.NewStyle().Foreground(lipgloss.Color("252"))
	warn := r.NewStyle().Foreground(lipgloss.Color("203"))
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)

	lines := []string{title.Render("StayAwake " + s.Version)}
	for _, rw := range s.rows() {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, key.Render(rw.key), value.Render(rw.value)))
	}
	if s.LockWarning != "" {
		lines = append(lines, warn.Render("! "+s.LockWarning))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
