package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/config"
	"github.com/pandalearn/pandalearn/pkg/store"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

// themeSession bundles what every theme subcommand needs.
type themeSession struct {
	cfg     config.Config
	store   store.Store
	signal  theme.Signal
	manager *theme.Manager
}

func (s *themeSession) Close() error { return s.store.Close() }

// openThemeSession loads the configuration and builds the terminal theme
// manager. noStore runs without persistence.
func (c *CLI) openThemeSession(ctx context.Context, noStore bool) (*themeSession, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if noStore {
		cfg.Store.Backend = store.BackendNone
	}
	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	signal := theme.DefaultSignal()
	return &themeSession{
		cfg:     cfg,
		store:   st,
		signal:  signal,
		manager: c.newManager(cfg, st, signal),
	}, nil
}

// themeCommand creates the theme management command.
func (c *CLI) themeCommand() *cobra.Command {
	var noStore bool

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the light/dark theme preference",
		Long: `Show or change the light/dark theme preference.

The preference is read from the configured store first, then from the
operating system (` + theme.EnvPrefersDark + `, the desktop color scheme, or
the terminal background), and falls back to light.`,
	}
	cmd.PersistentFlags().BoolVar(&noStore, "no-store", false, "do not read or persist the preference")

	cmd.AddCommand(c.themeGetCommand(&noStore))
	cmd.AddCommand(c.themeSetCommand(&noStore))
	cmd.AddCommand(c.themeToggleCommand(&noStore))
	cmd.AddCommand(c.themeResetCommand(&noStore))
	cmd.AddCommand(c.themeWatchCommand(&noStore))
	cmd.AddCommand(c.themePathCommand())

	return cmd
}

// themeGetCommand creates the "theme get" subcommand.
func (c *CLI) themeGetCommand(noStore *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the resolved theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openThemeSession(ctx, *noStore)
			if err != nil {
				return err
			}
			defer s.Close()

			p := s.manager.Initialize(ctx)
			printKeyValue("Theme", styleTheme(p))
			printKeyValue("System", systemPreference(ctx, s.signal))
			printKeyValue("Store", s.cfg.Store.Backend)
			return nil
		},
	}
}

// themeSetCommand creates the "theme set" subcommand.
func (c *CLI) themeSetCommand(noStore *bool) *cobra.Command {
	return &cobra.Command{
		Use:               "set <light|dark>",
		Short:             "Choose the theme explicitly",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeThemes,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := theme.Parse(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := c.openThemeSession(ctx, *noStore)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.manager.Set(ctx, p); err != nil {
				return err
			}
			printSuccess("Theme set to %s", styleTheme(p))
			return nil
		},
	}
}

// themeToggleCommand creates the "theme toggle" subcommand.
func (c *CLI) themeToggleCommand(noStore *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openThemeSession(ctx, *noStore)
			if err != nil {
				return err
			}
			defer s.Close()

			s.manager.Initialize(ctx)
			p := s.manager.Toggle(ctx)
			printSuccess("Theme is now %s", styleTheme(p))
			return nil
		},
	}
}

// themeResetCommand creates the "theme reset" subcommand.
func (c *CLI) themeResetCommand(noStore *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the explicit choice and follow the system again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openThemeSession(ctx, *noStore)
			if err != nil {
				return err
			}
			defer s.Close()

			p := s.manager.Reset(ctx)
			printSuccess("Theme reset to %s", styleTheme(p))
			printDetail("System preference: %s", systemPreference(ctx, s.signal))
			return nil
		},
	}
}

// themeWatchCommand creates the "theme watch" subcommand.
func (c *CLI) themeWatchCommand(noStore *bool) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow system theme changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openThemeSession(ctx, *noStore)
			if err != nil {
				return err
			}
			defer s.Close()

			every := s.cfg.Theme.PollInterval.D()
			if interval > 0 {
				every = interval
			}

			unsubscribe := s.manager.Subscribe(func(p theme.Preference) {
				printInfo("Theme %s", styleTheme(p))
			})
			defer unsubscribe()

			s.manager.Initialize(ctx)
			printDetail("Polling the system preference every %s (ctrl+c to stop)", every)
			return theme.Watch(ctx, s.manager, s.signal, every)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config)")
	return cmd
}

// themePathCommand creates the "theme path" subcommand.
func (c *CLI) themePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the configuration and preference are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printKeyValue("Config", displayPath(c.configFile()))
			switch cfg.Store.Backend {
			case store.BackendFile:
				fs, err := store.NewFileStore(cfg.Store.Dir)
				if err != nil {
					return fmt.Errorf("open file store: %w", err)
				}
				printKeyValue("Preference", displayPath(fs.Path(theme.Key)))
			case store.BackendRedis:
				printKeyValue("Preference", cfg.Store.RedisAddr+" "+cfg.Store.RedisPrefix+theme.Key)
			default:
				printKeyValue("Preference", "not persisted ("+cfg.Store.Backend+")")
			}
			return nil
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

// systemPreference describes what the OS signal reports right now.
func systemPreference(ctx context.Context, signal theme.Signal) string {
	dark, err := signal.PrefersDark(ctx)
	if err != nil {
		return "unavailable"
	}
	return theme.FromDark(dark).String()
}
