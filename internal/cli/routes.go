package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/routes"
)

// routesCommand creates the routes command listing the site's pages.
func (c *CLI) routesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "routes [name]",
		Short:             "List the site's pages or look one up by name",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRoutes,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				path, err := routes.Lookup(routes.Name(args[0]))
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			}

			all := routes.All()
			rows := make([][]string, 0, len(all))
			for _, r := range all {
				rows = append(rows, []string{string(r.Name), r.Path, r.Title, string(r.Parent)})
			}
			printTable([]string{"Name", "Path", "Title", "Parent"}, rows)
			return nil
		},
	}
	return cmd
}
