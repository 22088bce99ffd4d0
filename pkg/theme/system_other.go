//go:build !darwin && !linux

package theme

// SystemSignal has no desktop detector on this platform.
func SystemSignal() Signal {
	return Unavailable()
}
