package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"barangay/internal/config"
	"barangay/internal/database"
	"barangay/internal/database/migration"
	"barangay/internal/ledger"
	"barangay/internal/logging"
	"barangay/internal/repository/postgres"
	"barangay/internal/seed"
	"barangay/internal/service"
	"barangay/internal/settings"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create the database schema and exit",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "seed",
			Usage: "Insert the demo requests when the table is empty",
		},
	},
	Action: migrate,
}

func migrate(cCtx *cli.Context) error {
	ctx := cCtx.Context

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, os.Stdout)

	if !cfg.Database.Enabled() {
		return fmt.Errorf("migrate requires DB_HOST")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}
	if !cCtx.Bool("seed") {
		return nil
	}

	appSettings, err := settings.FromConfig(cfg.Settings)
	if err != nil {
		return err
	}
	n, err := service.LoadLedger(ctx, ledger.New(appSettings), postgres.NewRequestPostgres(db), seed.Demo().Requests)
	if err != nil {
		return err
	}
	logger.WithField("requests", n).Info("ledger contents verified")
	return nil
}
