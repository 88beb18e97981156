package service

import (
	"context"
	"fmt"
	"os"

	"postboard/app/config"
	"postboard/app/logger"
	"postboard/app/routes"
	"postboard/app/seed"
	"postboard/app/server"
)

// RunAppServer serves the posts API until ctx is done.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Primary, os.Stderr)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	if cfg.Store.SeedFile != "" {
		posts, err := store.Find(ctx)
		if err != nil {
			return fmt.Errorf("failed to read store: %w", err)
		}
		if len(posts) == 0 {
			fx, err := seed.Load(cfg.Store.SeedFile)
			if err != nil {
				return err
			}
			res, err := seed.Apply(ctx, store, fx)
			if err != nil {
				return err
			}
			log.Info().
				Int("posts", res.Posts).
				Int("comments", res.Comments).
				Str("file", cfg.Store.SeedFile).
				Msg("seeded empty store")
		}
	}

	handler := routes.New(store, routes.Options{
		Logger:         log,
		RequestTimeout: cfg.Server.RequestTimeout,
		DebugErrors:    cfg.Primary.DebugErrors,
	})

	log.Info().
		Str("driver", cfg.Store.Driver).
		Str("path", dataPath(cfg)).
		Str("port", cfg.Server.Port).
		Msg("starting postboard")

	return server.New(cfg.Server, handler, log).Run(ctx)
}
