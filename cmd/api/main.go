package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"user-crud-service/cmd/api/app"
	"user-crud-service/cmd/api/server"
	"user-crud-service/internal/config"
)

var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-service",
		Short: "HTTP service for creating, reading, updating and deleting users.",
		Long: `user-service stores user records (name, email, birth date) in an
embedded SQLite database, or PostgreSQL, and exposes them over a JSON HTTP API.

Running without a subcommand is the same as "serve".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.PersistentFlags().String("config-path", ".", "directory containing app.env")
	cmd.PersistentFlags().String("http-port", "8080", "port to listen on (HTTP_PORT)")
	cmd.PersistentFlags().String("db-path", "users.db", "SQLite database file (DB_PATH)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config-path")
	if err != nil {
		return err
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" && !cmd.Flags().Changed("config-path") {
		configPath = env
	}

	cfg, err := config.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := server.WithSignal(cmd.Context())
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}
