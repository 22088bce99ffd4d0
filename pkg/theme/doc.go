// Package theme owns the light/dark preference of a visitor.
//
// A [Manager] holds a single tri-state [Preference]. It starts [Unset] and is
// resolved on [Manager.Initialize] from, in order:
//
//  1. the value persisted in [Storage] under [Key]
//  2. the operating-system signal ([Signal])
//  3. [Light]
//
// Every change to a resolved value is applied before observers run: the
// [Presenter] flag is switched and the value is written back to storage.
// Storage and signal failures never escape; the manager degrades to a
// session-only theme that follows the default.
//
// # Usage
//
//	m := theme.NewManager(theme.Options{
//	    Storage:   store,
//	    Signal:    theme.DefaultSignal(),
//	    Presenter: theme.PresenterFunc(func(dark bool) { page.Dark = dark }),
//	})
//	m.Subscribe(func(p theme.Preference) { fmt.Println("theme:", p) })
//	m.Initialize(ctx)
//
//	// Later, from the OS notification channel:
//	m.OnSystemPreferenceChanged(ctx, true)
//
// # OS signals
//
// [DefaultSignal] chains the detectors available on the host:
// PANDALEARN_PREFERS_DARK, the desktop setting (macOS defaults, GNOME
// gsettings) and finally the terminal background colour. [Watch] polls a
// signal and forwards flips to the manager.
package theme
