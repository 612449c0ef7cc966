package main

import (
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/logging"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := database.Connect(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(database.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		slog.Info("database migrated")
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
