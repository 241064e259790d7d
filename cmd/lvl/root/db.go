package root

import (
	"context"
	"database/sql"

	"levelup/internal/clock"
	"levelup/internal/config"
	"levelup/internal/engine"
	"levelup/internal/storage"
)

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	path := cfg.DBPath
	if path == "" {
		p, err := storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, err
	}
	clk, err := clock.New(cfg.Timezone)
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := engine.NewService(db, clk)
	svc.SetRedemptionPolicy(cfg.Shop.ConversionRate, cfg.Shop.MinRedemption)
	if err := svc.Bootstrap(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
