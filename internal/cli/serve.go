package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/internal/web"
	"github.com/pandalearn/pandalearn/pkg/config"
	"github.com/pandalearn/pandalearn/pkg/observability"
)

// serveCommand creates the serve command running the lesson site.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lesson site over HTTP",
		Long: `Serve the lesson site over HTTP.

Every visitor gets a session cookie; their theme preference is kept in the
configured store. Use the redis backend when several instances share
visitors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cfg.Observability.Tracing {
				observability.RegisterOTel()
				c.Logger.Debug("tracing hooks registered")
			}

			st, err := c.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			var connecting *task
			if cfg.Content.Source == config.SourceMongo {
				connecting = newTask(ctx, os.Stderr, "Connecting to MongoDB...")
				connecting.Start()
			}
			repo, closeRepo, err := c.openContent(ctx, cfg)
			if connecting != nil {
				if err != nil {
					connecting.Fail("Could not load lessons from %s", cfg.Content.MongoDatabase)
				} else {
					connecting.Stop()
				}
			}
			if err != nil {
				return err
			}
			defer closeRepo(context.WithoutCancel(ctx))

			srv, err := web.New(web.Options{
				Store:           st,
				Content:         repo,
				Logger:          c.Logger,
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout.D(),
				WriteTimeout:    cfg.Server.WriteTimeout.D(),
				ShutdownTimeout: cfg.Server.ShutdownTimeout.D(),
				SessionTTL:      cfg.Server.SessionTTL.D(),
				SecureCookies:   cfg.Server.SecureCookies,
				PinUserChoice:   cfg.Theme.PinUserChoice,
			})
			if err != nil {
				return err
			}

			logServing(loggerFromContext(ctx), cfg)
			printInfo("Serving %s lessons on %s", cfg.Content.Source, StyleLink.Render(siteURL(cfg.Server.Addr)))
			printDetail("Preferences: %s store", cfg.Store.Backend)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// siteURL turns a listen address into a clickable URL.
func siteURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
