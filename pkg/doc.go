// Package pkg provides the core libraries of Pandalearn, the Panda Learn
// lesson site.
//
// # Overview
//
// Pandalearn serves HTML and CSS lessons (practice examples, a tag reference
// book and a common-attributes table) over HTTP and in the terminal. Both
// surfaces remember whether the reader prefers a light or a dark theme. The
// pkg directory is organized into these areas:
//
//  1. [theme] - The theme preference manager and OS preference signals
//  2. [store] - Key-value persistence for preferences (file, memory, Redis)
//  3. [content] - Lesson content: embedded TOML catalog, MongoDB repository, rendering
//  4. [routes] - The registry of navigable pages
//  5. [session] - Anonymous visitor sessions for the web server
//  6. [config] - Layered configuration (defaults, TOML file, environment)
//  7. [observability] - Hooks for tracing theme, store and HTTP events
//
// # Architecture
//
// The theme flow shared by the web server and the CLI:
//
//	store (persisted "theme")     OS signal (client hint, desktop, terminal)
//	            ↘                       ↙
//	             [theme.Manager].Initialize
//	                       ↓
//	      presenter flag → persistence → observers
//
// # Quick Start
//
// Resolve and persist a preference from the command line:
//
//	import (
//	    "github.com/pandalearn/pandalearn/pkg/store"
//	    "github.com/pandalearn/pandalearn/pkg/theme"
//	)
//
//	st, _ := store.Open(ctx, store.Options{Backend: store.BackendFile, Dir: dir})
//	m := theme.NewManager(theme.Options{Storage: st, Signal: theme.DefaultSignal()})
//	fmt.Println(m.Initialize(ctx)) // "light" or "dark"
//	m.Toggle(ctx)
//
// # Error Handling
//
// Coded errors live in [errors]. Storage and OS signal failures never reach
// callers of the theme manager; they are reported to the observability hooks
// and logged at debug level.
package pkg
