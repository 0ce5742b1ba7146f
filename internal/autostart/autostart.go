// Package autostart registers StayAwake to start on login.
package autostart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Label identifies the login item on every platform
const Label = "com.stayawake.agent"

// AppName is the display name used for the login item
const AppName = "StayAwake"

// Entry is the command started on login
type Entry struct {
	Executable string
	Args       []string
}

// CommandLine returns the entry as a single quoted command line
func (e Entry) CommandLine() string {
	parts := make([]string, 0, len(e.Args)+1)
	parts = append(parts, quoteArg(e.Executable))
	for _, a := range e.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

// quoteArg double quotes s when it contains whitespace or quoting characters
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\$`") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}

// Enable installs the login item for the running executable. args are
// appended to the command line.
func Enable(args ...string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return enable(Entry{Executable: execPath, Args: args})
}

// Disable removes the login item. Removing a missing item is not an error.
func Disable() error {
	return disable()
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() (bool, error) {
	return isEnabled()
}

// Location describes where the login item is stored
func Location() (string, error) {
	return location()
}

const launchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{xml .Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{xml .Executable}}</string>
{{- range .Args}}
        <string>{{xml .}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const desktopEntry = `[Desktop Entry]
Type=Application
Name={{.Name}}
Comment=Keep the session awake
Exec={{.Exec}}
Terminal=false
X-GNOME-Autostart-enabled=true
`

var templates = template.Must(template.New("plist").Funcs(template.FuncMap{
	"xml": func(s string) (string, error) {
		var buf bytes.Buffer
		if err := xml.EscapeText(&buf, []byte(s)); err != nil {
			return "", err
		}
		return buf.String(), nil
	},
}).Parse(launchAgentPlist))

func init() {
	template.Must(templates.New("desktop").Parse(desktopEntry))
}

// renderLaunchAgent writes a launchd agent plist for e
func renderLaunchAgent(w io.Writer, e Entry) error {
	return templates.ExecuteTemplate(w, "plist", struct {
		Label string
		Entry
	}{Label, e})
}

// renderDesktopEntry writes an XDG autostart .desktop file for e
func renderDesktopEntry(w io.Writer, e Entry) error {
	return templates.ExecuteTemplate(w, "desktop", struct {
		Name string
		Exec string
	}{AppName, e.CommandLine()})
}

// fileItem is a login item backed by a single file
type fileItem struct {
	path   string
	render func(io.Writer, Entry) error
}

func (f fileItem) install(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := f.render(&buf, e); err != nil {
		return err
	}
	return os.WriteFile(f.path, buf.Bytes(), 0644)
}

func (f fileItem) remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f fileItem) exists() (bool, error) {
	_, err := os.Stat(f.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
