package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/content"
	"github.com/pandalearn/pandalearn/pkg/routes"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pandalearn.

Completions cover subcommands, theme values, route names and the topic and
example keys of the built-in lessons.

  $ source <(pandalearn completion bash)
  $ pandalearn completion zsh > "${fpath[1]}/_pandalearn"
  $ pandalearn completion fish > ~/.config/fish/completions/pandalearn.fish
  PS> pandalearn completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Argument Completion
// =============================================================================

// completeThemes offers the values `theme set` accepts.
func completeThemes(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return withPrefix(toComplete, string(theme.Light), string(theme.Dark)), cobra.ShellCompDirectiveNoFileComp
}

// completeRoutes offers route names with their titles as descriptions.
func completeRoutes(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, r := range routes.All() {
		if strings.HasPrefix(string(r.Name), toComplete) {
			out = append(out, string(r.Name)+"\t"+r.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeLessons offers topic keys, then the example keys of that topic.
// Only the built-in lessons are consulted so completion never dials MongoDB.
func completeLessons(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	catalog, err := content.Embedded()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return lessonCandidates(context.Background(), catalog, args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func lessonCandidates(ctx context.Context, repo content.Repository, args []string, toComplete string) []string {
	var out []string
	switch len(args) {
	case 0:
		topics, err := repo.Topics(ctx)
		if err != nil {
			return nil
		}
		for _, t := range topics {
			if strings.HasPrefix(t.Key, toComplete) {
				out = append(out, t.Key+"\t"+t.Title)
			}
		}
	case 1:
		examples, err := repo.Examples(ctx, args[0])
		if err != nil {
			return nil
		}
		for _, e := range examples {
			if strings.HasPrefix(e.Key, toComplete) {
				out = append(out, e.Key+"\t"+e.Title)
			}
		}
	}
	return out
}

func withPrefix(prefix string, values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
