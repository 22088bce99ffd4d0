package theme

// SystemSignal reads the macOS appearance setting.
func SystemSignal() Signal {
	return SignalFunc(appleInterfaceStyle)
}
