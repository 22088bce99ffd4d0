package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/config"
	"github.com/pandalearn/pandalearn/pkg/content"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

// lessonsCommand creates the lessons command for reading content in the
// terminal without the interactive browser.
func (c *CLI) lessonsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "List and print lessons",
	}

	cmd.AddCommand(c.lessonsListCommand())
	cmd.AddCommand(c.lessonsShowCommand())
	cmd.AddCommand(c.lessonsAttributesCommand())

	return cmd
}

// lessonsListCommand creates the "lessons list" subcommand.
func (c *CLI) lessonsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [topic]",
		Short: "List topics, or the practice examples of a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			repo, closeRepo, err := c.openContent(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRepo(context.WithoutCancel(ctx))

			if len(args) == 1 {
				return listExamples(ctx, repo, args[0])
			}
			return listTopics(ctx, repo)
		},
	}
}

func listTopics(ctx context.Context, repo content.Repository) error {
	topics, err := repo.Topics(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(topics))
	for _, t := range topics {
		examples, err := repo.Examples(ctx, t.Key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{t.Key, t.Title, strconv.Itoa(len(examples)), t.Summary})
	}
	printTable([]string{"Key", "Topic", "Examples", "Summary"}, rows)
	return nil
}

func listExamples(ctx context.Context, repo content.Repository, topic string) error {
	examples, err := repo.Examples(ctx, topic)
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		printInfo("No practice examples for %s yet", topic)
		return nil
	}
	rows := make([][]string, 0, len(examples))
	for _, e := range examples {
		rows = append(rows, []string{e.Key, e.Title, strconv.Itoa(len(e.Tags))})
	}
	printTable([]string{"Key", "Example", "Tags"}, rows)
	printNextStep("Read one", fmt.Sprintf("%s lessons show %s %s", appName, topic, examples[0].Key))
	return nil
}

// lessonsShowCommand creates the "lessons show" subcommand.
func (c *CLI) lessonsShowCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <topic> [example]",
		Short: "Print a practice example",
		Long: `Print a practice example rendered for the terminal theme.

Without an example key every example of the topic is printed. Use --raw to
print the Markdown source instead.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeLessons,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			repo, closeRepo, err := c.openContent(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRepo(context.WithoutCancel(ctx))

			topic, err := repo.Topic(ctx, args[0])
			if err != nil {
				return err
			}
			var examples []content.Example
			if len(args) == 2 {
				ex, err := repo.Example(ctx, topic.Key, args[1])
				if err != nil {
					return err
				}
				examples = []content.Example{ex}
			} else if examples, err = repo.Examples(ctx, topic.Key); err != nil {
				return err
			}

			for _, ex := range examples {
				md := content.Markdown(topic, ex)
				if err := c.printMarkdown(ctx, cfg, md, raw); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without terminal styling")
	return cmd
}

// lessonsAttributesCommand creates the "lessons attributes" subcommand.
func (c *CLI) lessonsAttributesCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "Print the common HTML attributes table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			repo, closeRepo, err := c.openContent(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRepo(context.WithoutCancel(ctx))

			attrs, err := repo.Attributes(ctx)
			if err != nil {
				return err
			}
			return c.printMarkdown(ctx, cfg, content.AttributesMarkdown(attrs), raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without terminal styling")
	return cmd
}

// printMarkdown renders md with the glamour style of the resolved theme.
func (c *CLI) printMarkdown(ctx context.Context, cfg config.Config, md string, raw bool) error {
	if raw {
		fmt.Print(md)
		return nil
	}

	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	p := c.newManager(cfg, st, theme.DefaultSignal()).Initialize(ctx)
	loggerFromContext(ctx).Debug("rendering markdown", "theme", p, "width", terminalWidth())
	out, err := content.Terminal(md, p.IsDark(), terminalWidth())
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Print(out)
	return nil
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return min(w, 120)
	}
	return 80
}
