package theme

// SystemSignal reads the GNOME colour scheme.
func SystemSignal() Signal {
	return SignalFunc(gnomeColorScheme)
}
