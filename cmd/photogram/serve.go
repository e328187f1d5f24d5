package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfryer1193/photogram/internal/config"
	"github.com/dfryer1193/photogram/internal/server"
	"github.com/dfryer1193/photogram/shared/auth"
	"github.com/dfryer1193/photogram/shared/db/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the GraphQL API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		defer func() {
			if err := database.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}()

		gin.SetMode(gin.ReleaseMode)
		router := server.NewRouter(database.DB(), database, tokens, server.Options{
			NotifyOnLike: cfg.NotifyOnLike,
		})

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: router,
		}

		serveErr := make(chan error, 1)
		go func() {
			log.Info().Int("port", cfg.Port).Str("database", cfg.SQLite.Path).Msg("Starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		case <-quit:
		case <-cmd.Context().Done():
		}

		log.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		log.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
