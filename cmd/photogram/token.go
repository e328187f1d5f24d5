package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dfryer1193/photogram/internal/config"
	"github.com/dfryer1193/photogram/shared/auth"
	"github.com/dfryer1193/photogram/shared/db/sqlite"
	"github.com/dfryer1193/photogram/users/domain"
	"github.com/dfryer1193/photogram/users/persistence"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <userID>",
	Short: "Print a bearer token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		tokens, err := auth.NewTokens(cfg.Tokens)
		if err != nil {
			return fmt.Errorf("JWT_SECRET must be set: %w", err)
		}

		database := sqlite.NewSQLiteDB(cfg.SQLite)
		if err := database.Connect(); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if _, err := persistence.NewUserRepository(database.DB()).GetByID(cmd.Context(), userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("no user with id %d", userID)
			}
			return err
		}

		token, err := tokens.Issue(userID)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
