package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pandalearn/pandalearn/pkg/content"
)

// contentCommand creates the content management command.
func (c *CLI) contentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage lesson content storage",
	}

	cmd.AddCommand(c.contentSeedCommand())

	return cmd
}

// contentSeedCommand creates the "content seed" subcommand.
func (c *CLI) contentSeedCommand() *cobra.Command {
	var uri, database string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy the built-in lessons into MongoDB",
		Long: `Copy the built-in lessons into MongoDB.

Documents are upserted by key, so seeding again updates the lessons in
place. Afterwards set content.source = "mongo" to serve from the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if uri != "" {
				cfg.Content.MongoURI = uri
			}
			if database != "" {
				cfg.Content.MongoDatabase = database
			}
			if cfg.Content.MongoURI == "" {
				return fmt.Errorf("mongo URI is required: pass --uri or set PANDALEARN_MONGO_URI")
			}

			src, err := content.Embedded()
			if err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			seeding := newTask(ctx, os.Stderr, "Connecting to MongoDB...")
			seeding.Start()

			dst, disconnect, err := content.ConnectMongo(ctx, cfg.Content.MongoURI, cfg.Content.MongoDatabase)
			if err != nil {
				seeding.Fail("Could not connect to MongoDB")
				return err
			}
			defer disconnect(context.WithoutCancel(ctx))

			stats, err := content.Seed(ctx, dst, src, func(collection string, s content.SeedStats) {
				seeding.Step("Seeding %s.%s (%d topics, %d examples, %d attributes)",
					cfg.Content.MongoDatabase, collection, s.Topics, s.Examples, s.Attributes)
			})
			if err != nil {
				if seeding.Cancelled() {
					seeding.Stop()
					return ctx.Err()
				}
				seeding.Fail("Seeding %s failed", cfg.Content.MongoDatabase)
				return err
			}
			seeding.Succeed("Seeded %s topics, %s examples, %s attributes",
				StyleNumber.Render(fmt.Sprint(stats.Topics)),
				StyleNumber.Render(fmt.Sprint(stats.Examples)),
				StyleNumber.Render(fmt.Sprint(stats.Attributes)))
			prog.done("seed complete", "database", cfg.Content.MongoDatabase,
				"topics", stats.Topics, "examples", stats.Examples, "attributes", stats.Attributes)
			printNextStep("Serve from the database", "PANDALEARN_CONTENT_SOURCE=mongo "+appName+" serve")
			return nil
		},
	}
	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB connection string (default from config)")
	cmd.Flags().StringVar(&database, "database", "", "database name (default from config)")
	return cmd
}
