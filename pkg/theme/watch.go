package theme

import (
	"context"
	"time"
)

// DefaultPollInterval is used by Watch when interval is not positive.
const DefaultPollInterval = 2 * time.Second

// Watch polls signal until ctx is done and forwards every flip of the OS
// preference to m.OnSystemPreferenceChanged. Only changes of the signal
// itself are forwarded, so an explicit user choice is not reverted on the
// next tick. Watch returns ctx.Err().
func Watch(ctx context.Context, m *Manager, signal Signal, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	last, err := signal.PrefersDark(ctx)
	known := err == nil

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		dark, err := signal.PrefersDark(ctx)
		if err != nil {
			continue
		}
		if known && dark == last {
			continue
		}
		last, known = dark, true
		m.OnSystemPreferenceChanged(ctx, dark)
	}
}
