//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"
)

// linuxTyper вызывает xdotool (X11) или wtype (Wayland).
type linuxTyper struct {
	tool string
	args func(text string) []string
}

func newTyper() (Typer, error) {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if path, err := exec.LookPath("wtype"); err == nil {
			return &linuxTyper{
				tool: path,
				args: func(text string) []string { return []string{text} },
			}, nil
		}
	}

	// XWayland-приложения тоже принимают ввод через xdotool
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("%w: установите xdotool или wtype", ErrNoBackend)
	}
	return &linuxTyper{
		tool: path,
		args: func(text string) []string {
			return []string{"type", "--clearmodifiers", "--delay", "2", "--", text}
		},
	}, nil
}

func (t *linuxTyper) Type(text string) error {
	if text == "" {
		return nil
	}
	out, err := exec.Command(t.tool, t.args(text)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", t.tool, err, out)
	}
	return nil
}
