// Package main is the entry point for the LightBnB API.
// `serve` (the default) runs the HTTP server; `migrate` applies the schema and exits.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lightbnb/src/app/server"
	"lightbnb/src/infra/config"
	"lightbnb/src/infra/db"
	"lightbnb/src/infra/logger"
	"lightbnb/src/infra/repo"
	"lightbnb/src/infra/security"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:           "lightbnb",
		Short:         "LightBnB property rental API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	root.AddCommand(serveCmd, &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context())
		},
	})
	return root
}

func setup(ctx context.Context) (*config.Config, *slog.Logger, *db.Postgres, error) {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(cfg.Log)

	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, pg, nil
}

func migrate(ctx context.Context) error {
	_, log, pg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()

	return db.Migrate(ctx, pg, log)
}

func run(ctx context.Context) error {
	cfg, log, pg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()

	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(ctx, pg, log); err != nil {
			return err
		}
	}

	repos := repo.New(pg, log, cfg.Database.QueryTimeout)

	srv := server.New(cfg, log, server.Deps{
		Users:        repos.Users,
		Reservations: repos.Reservations,
		Properties:   repos.Properties,
		Hasher:       security.NewBcryptHasher(cfg.Security.BcryptCost),
	})

	// Run blocks until shutdown signal is received
	return srv.Run(ctx)
}
