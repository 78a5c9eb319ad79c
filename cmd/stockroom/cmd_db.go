package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/database/seeders"
	"github.com/shashiranjanraj/stockroom/internal/server"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/migration"
)

// withStore loads config, sets up logging and opens the database for one
// command.
func withStore(ctx context.Context, fn func(*database.Store) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	flush := server.SetupLogging(ctx)
	defer func() { _ = flush(context.Background()) }()

	store, err := server.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// stockroom migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(s *database.Store) error {
			_, err := migration.New(s.DB(ctx), cmd.OutOrStdout()).Run(ctx)
			return err
		})
	},
}

// stockroom migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(s *database.Store) error {
			_, err := migration.New(s.DB(ctx), cmd.OutOrStdout()).Rollback(ctx)
			return err
		})
	},
}

// stockroom migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(s *database.Store) error {
			rows, err := migration.New(s.DB(ctx), nil).Status(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
			for _, r := range rows {
				if r.Ran {
					fmt.Fprintf(w, "%s\tRan\t%d\n", r.Name, r.Batch)
				} else {
					fmt.Fprintf(w, "%s\tPending\t-\n", r.Name)
				}
			}
			return w.Flush()
		})
	},
}

// stockroom seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo suppliers and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(s *database.Store) error {
			if _, err := migration.New(s.DB(ctx), cmd.OutOrStdout()).Run(ctx); err != nil {
				return err
			}
			return seeders.RunAll(ctx, s.DB(ctx), cmd.OutOrStdout())
		})
	},
}
