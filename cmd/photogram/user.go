package main

import (
	"fmt"

	"github.com/dfryer1193/photogram/internal/config"
	"github.com/dfryer1193/photogram/shared/db/sqlite"
	"github.com/dfryer1193/photogram/users/persistence"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Register a user and print its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		database := sqlite.NewSQLiteDB(cfg.SQLite)
		if err := database.Connect(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		u, err := persistence.NewUserRepository(database.DB()).Create(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", u.ID, u.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
