package autostart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderLaunchAgent(t *testing.T) {
	var buf bytes.Buffer
	e := Entry{Executable: "/Applications/Stay & Awake/stayawake", Args: []string{"run", "--tray"}}
	if err := renderLaunchAgent(&buf, e); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<string>com.stayawake.agent</string>",
		"<string>/Applications/Stay &amp; Awake/stayawake</string>",
		"<string>run</string>",
		"<string>--tray</string>",
		"<key>RunAtLoad</key>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected plist to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderDesktopEntry(t *testing.T) {
	var buf bytes.Buffer
	e := Entry{Executable: "/opt/stay awake/stayawake", Args: []string{"run"}}
	if err := renderDesktopEntry(&buf, e); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(buf.String(), `Exec="/opt/stay awake/stayawake" run`) {
		t.Errorf("Expected quoted Exec line, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "[Desktop Entry]\n") {
		t.Errorf("Expected desktop entry header, got:\n%s", buf.String())
	}
}

func TestQuoteArg(t *testing.T) {
	tests := map[string]string{
		"plain":    "plain",
		"":         `""`,
		"a b":      `"a b"`,
		`say "hi"`: `"say \"hi\""`,
		"$HOME":    `"\$HOME"`,
	}
	for in, want := range tests {
		if got := quoteArg(in); got != want {
			t.Errorf("quoteArg(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestFileItemLifecycle(t *testing.T) {
	it := fileItem{
		path:   filepath.Join(t.TempDir(), "autostart", "stayawake.desktop"),
		render: renderDesktopEntry,
	}

	if ok, err := it.exists(); err != nil || ok {
		t.Fatalf("Expected item to be absent, got %v (%v)", ok, err)
	}

	if err := it.install(Entry{Executable: "/usr/bin/stayawake"}); err != nil {
		t.Fatalf("Expected install to succeed, got %v", err)
	}
	if ok, _ := it.exists(); !ok {
		t.Error("Expected item to exist after install")
	}
	data, err := os.ReadFile(it.path)
	if err != nil || !strings.Contains(string(data), "Exec=/usr/bin/stayawake\n") {
		t.Errorf("Unexpected file contents %q (%v)", data, err)
	}

	if err := it.remove(); err != nil {
		t.Fatalf("Expected remove to succeed, got %v", err)
	}
	if err := it.remove(); err != nil {
		t.Errorf("Expected second remove to be a no-op, got %v", err)
	}
}
