package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"raspadinha/internal/auth"
	"raspadinha/internal/cache"
	"raspadinha/internal/catalog"
	"raspadinha/internal/config"
	"raspadinha/internal/db"
	"raspadinha/internal/logging"
	"raspadinha/internal/repository"
	"raspadinha/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "load a scratch card catalog and mint development tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "catalog YAML file; empty skips catalog loading",
				EnvVars: []string{"SEED_CATALOG"},
			},
			&cli.StringFlag{
				Name:  "token-for",
				Usage: "print a bearer token for this user id",
			},
			&cli.StringFlag{
				Name:  "email",
				Value: "dev@raspadinha.local",
				Usage: "email claim of the printed token",
			},
			&cli.DurationFlag{
				Name:  "token-ttl",
				Value: 24 * time.Hour,
				Usage: "lifetime of the printed token",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	logging.Setup(cfg.ServiceName+"-seed", cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if path := c.String("catalog"); path != "" {
		if err := seedCatalog(c, cfg, path); err != nil {
			return err
		}
	}

	if raw := c.String("token-for"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("token-for must be a uuid: %w", err)
		}
		token, err := auth.NewJWTService(cfg.JWTSecret).GenerateAccessToken(userID, c.String("email"), c.Duration("token-ttl"))
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		fmt.Fprintln(c.App.Writer, token)
	}
	return nil
}

func seedCatalog(c *cli.Context, cfg *config.Config, path string) error {
	file, err := catalog.Load(path)
	if err != nil {
		return err
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("connected to database")

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	sum, err := catalog.Apply(c.Context, repository.NewStore(gormDB), file)
	if err != nil {
		return err
	}
	// drop cached public views so the new catalog is served immediately
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	for _, card := range file.Cards {
		_ = cacheClient.Delete(c.Context, service.CatalogCacheKey(card.ID))
	}

	log.Info().
		Str("catalog", path).
		Int("cards", sum.Cards).
		Int("batches", sum.Batches).
		Int("symbols", sum.Symbols).
		Msg("catalog seeded")
	return nil
}
