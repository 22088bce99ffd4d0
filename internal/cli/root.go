package cli

import (
	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/buildinfo"
	"github.com/pandalearn/pandalearn/pkg/config"
)

// SetVersion sets the version information displayed by --version and the
// web server's Server header. main calls it with values injected via
// ldflags; empty values keep the defaults.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pandalearn serves and browses web development lessons",
		Long: `Pandalearn is the Panda Learn lesson site: HTML and CSS practice examples,
a tag reference book and a common-attributes table, served over HTTP or
browsed in the terminal. Both remember the light or dark theme.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+displayPath(config.DefaultPath())+")")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.lessonsCommand())
	root.AddCommand(c.routesCommand())
	root.AddCommand(c.themeCommand())
	root.AddCommand(c.contentCommand())
	root.AddCommand(c.completionCommand())

	return root
}
