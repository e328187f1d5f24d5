package main

import (
	"os"

	"github.com/dfryer1193/photogram/internal/config"
	"github.com/dfryer1193/photogram/shared/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "photogram",
	Short:         "Photo sharing GraphQL API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before reading configuration")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
