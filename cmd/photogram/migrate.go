package main

import (
	"fmt"

	"github.com/dfryer1193/photogram/internal/config"
	"github.com/dfryer1193/photogram/shared/db/sqlite"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		database := sqlite.NewSQLiteDB(cfg.SQLite)
		if err := database.Connect(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		defer database.Close()

		version, err := database.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}

		if version != sqlite.LatestVersion() {
			return fmt.Errorf("schema version %d, expected %d", version, sqlite.LatestVersion())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is at schema version %d\n", cfg.SQLite.Path, version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
