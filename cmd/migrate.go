package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipping-management/internal/infrastructure/database/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and the shipment report view",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Driver == "memory" {
			return fmt.Errorf("migrate needs the postgres driver")
		}
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		return db.Migrate()
	},
}
