package theme

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EnvPrefersDark overrides every other OS signal when set to a boolean,
// "dark" or "light".
const EnvPrefersDark = "PANDALEARN_PREFERS_DARK"

// ErrSignalUnavailable is returned by a Signal that cannot answer on this
// host. The manager treats it as "no OS preference".
var ErrSignalUnavailable = errors.New("os theme signal unavailable")

// Signal reports whether the operating system prefers a dark interface.
type Signal interface {
	PrefersDark(ctx context.Context) (bool, error)
}

// SignalFunc adapts a function to Signal.
type SignalFunc func(ctx context.Context) (bool, error)

func (f SignalFunc) PrefersDark(ctx context.Context) (bool, error) { return f(ctx) }

// Fixed returns a signal that always gives the same answer.
func Fixed(dark bool) Signal {
	return SignalFunc(func(context.Context) (bool, error) { return dark, nil })
}

// Unavailable returns a signal that never answers.
func Unavailable() Signal {
	return SignalFunc(func(context.Context) (bool, error) { return false, ErrSignalUnavailable })
}

// FirstAvailable returns a signal that asks each of signals in order and
// uses the first answer. Nil entries are skipped.
func FirstAvailable(signals ...Signal) Signal {
	return SignalFunc(func(ctx context.Context) (bool, error) {
		for _, s := range signals {
			if s == nil {
				continue
			}
			if dark, err := s.PrefersDark(ctx); err == nil {
				return dark, nil
			}
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
		return false, ErrSignalUnavailable
	})
}

// DefaultSignal chains the environment override, the desktop setting and
// the terminal background.
func DefaultSignal() Signal {
	return FirstAvailable(EnvSignal(EnvPrefersDark), SystemSignal(), TerminalSignal())
}

// EnvSignal reads the preference from an environment variable.
func EnvSignal(name string) Signal {
	return SignalFunc(func(context.Context) (bool, error) {
		return parseEnvValue(os.Getenv(name))
	})
}

func parseEnvValue(v string) (bool, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "":
		return false, ErrSignalUnavailable
	case "dark":
		return true, nil
	case "light":
		return false, nil
	}
	dark, err := strconv.ParseBool(v)
	if err != nil {
		return false, ErrSignalUnavailable
	}
	return dark, nil
}

// TerminalSignal reports whether the attached terminal has a dark
// background. It is unavailable when stdout is not a terminal.
func TerminalSignal() Signal {
	return SignalFunc(func(context.Context) (bool, error) {
		info, err := os.Stdout.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice == 0 {
			return false, ErrSignalUnavailable
		}
		return lipgloss.HasDarkBackground(), nil
	})
}

// runCommand executes a desktop settings tool. Tests replace it.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// appleInterfaceStyle asks macOS for the global interface style. The key
// is absent in light mode, which makes defaults exit non-zero.
func appleInterfaceStyle(ctx context.Context) (bool, error) {
	out, err := runCommand(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return false, nil
	case err != nil:
		return false, ErrSignalUnavailable
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), nil
}

// gnomeColorScheme asks GNOME for org.gnome.desktop.interface color-scheme,
// falling back to the GTK theme name on desktops that predate it.
func gnomeColorScheme(ctx context.Context) (bool, error) {
	out, err := runCommand(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err == nil {
		switch strings.Trim(strings.TrimSpace(string(out)), "'") {
		case "prefer-dark":
			return true, nil
		case "prefer-light":
			return false, nil
		}
	}

	out, gtkErr := runCommand(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if gtkErr != nil {
		if err != nil {
			return false, ErrSignalUnavailable
		}
		return false, nil
	}
	name := strings.ToLower(strings.Trim(strings.TrimSpace(string(out)), "'"))
	return strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, ":dark"), nil
}
