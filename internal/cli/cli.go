// Package cli implements the pandalearn command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/pandalearn/pandalearn/pkg/config"
	"github.com/pandalearn/pandalearn/pkg/content"
	"github.com/pandalearn/pandalearn/pkg/store"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pandalearn"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means config.DefaultPath.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Dependency Factories
// =============================================================================

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "path", c.configFile(), "store", cfg.Store.Backend, "content", cfg.Content.Source)
	return cfg, nil
}

// configFile is the path loadConfig reads.
func (c *CLI) configFile() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.DefaultPath()
}

// openStore opens the preference store named by the configuration.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	s, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	return s, nil
}

// openContent returns the lesson repository and a function releasing it.
func (c *CLI) openContent(ctx context.Context, cfg config.Config) (content.Repository, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	switch cfg.Content.Source {
	case config.SourceMongo:
		repo, disconnect, err := content.ConnectMongo(ctx, cfg.Content.MongoURI, cfg.Content.MongoDatabase)
		if err != nil {
			return nil, noop, err
		}
		return repo, disconnect, nil
	default:
		catalog, err := content.Embedded()
		if err != nil {
			return nil, noop, err
		}
		return catalog, noop, nil
	}
}

// newManager builds the terminal's theme manager. The presentation flag is
// lipgloss's dark-background setting, so every style rendered afterwards
// adapts to the preference.
func (c *CLI) newManager(cfg config.Config, s store.Store, signal theme.Signal) *theme.Manager {
	m := theme.NewManager(theme.Options{
		Storage:       s,
		Signal:        signal,
		Presenter:     theme.PresenterFunc(lipgloss.SetHasDarkBackground),
		PinUserChoice: cfg.Theme.PinUserChoice,
		Logger:        c.Logger,
	})
	m.Subscribe(logThemeChanges(c.Logger))
	return m
}

// =============================================================================
// Paths
// =============================================================================

// displayPath abbreviates paths under the home directory as ~/...
func displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join("~", rel)
	}
	return path
}
