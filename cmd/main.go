package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shipping-management/internal/app"
	"shipping-management/internal/config"
	"shipping-management/internal/infrastructure/database/postgres"
	"shipping-management/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shipping-management",
	Short: "Shipping management service with NACEX integration",
	Long: `Shipping management tracks outgoing shipments from delivery orders to the carrier,
prints labels, follows tracking and raises SLA alerts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var cfg *config.Config

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, jobCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env, cfg.Log.Directory); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// openRepositories connects the configured storage backend. The returned closer is never nil.
func openRepositories() (*app.Repositories, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on exit",
			zap.String("event", "memory_storage"),
		)
		return app.MemoryRepositories(nil), func() {}, nil
	case "postgres", "":
		if cfg.Database.Host == "" || cfg.Database.DBName == "" {
			return nil, nil, fmt.Errorf("database configuration is missing, set DB_HOST and DB_NAME")
		}
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closer := func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}
		return app.PostgresRepositories(db), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
