package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"basegraph.app/cms/core/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage postgres schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withMigrator(func(cmd *cobra.Command, m *db.Migrator) error {
		return m.Up(cmd.Context())
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: withMigrator(func(cmd *cobra.Command, m *db.Migrator) error {
		return m.Down(cmd.Context())
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: withMigrator(func(cmd *cobra.Command, m *db.Migrator) error {
		statuses, err := m.Status(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tAPPLIED\tFILE")
		for _, s := range statuses {
			fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Path)
		}
		return w.Flush()
	}),
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

// withMigrator connects to DATABASE_URL regardless of STORE_BACKEND; the
// migrations only describe the postgres schema.
func withMigrator(run func(cmd *cobra.Command, m *db.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer database.Close()

		migrator, err := db.NewMigrator(database)
		if err != nil {
			return err
		}
		defer migrator.Close()

		return run(cmd, migrator)
	}
}
