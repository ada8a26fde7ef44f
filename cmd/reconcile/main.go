package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"raspadinha/internal/config"
	"raspadinha/internal/db"
	"raspadinha/internal/logging"
	"raspadinha/internal/repository"
	"raspadinha/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "reconcile",
		Usage: "recompute batch counters from the issued chances",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report drift without correcting it",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 4,
				Usage: "batches checked in parallel",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("reconcile failed")
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	logger := logging.Setup(cfg.ServiceName+"-reconcile", cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	audit := service.NewAuditService(repository.NewStore(gormDB), c.Int("concurrency"))
	drifts, err := audit.ReconcileBatches(logger.WithContext(c.Context), c.Bool("dry-run"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	for _, d := range drifts {
		if err := enc.Encode(d); err != nil {
			return err
		}
	}
	log.Info().
		Int("drifted", len(drifts)).
		Bool("dry_run", c.Bool("dry-run")).
		Msg("reconciliation finished")
	return nil
}
