package main

import (
	"context"
	"fmt"

	"groundwork/internal/config"
	"groundwork/internal/store/postgres"
)

func openStore(ctx context.Context, cfg *config.ProjectConfig) (*postgres.Client, error) {
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is not configured in groundwork.yaml")
	}
	return postgres.New(ctx, cfg.Database.DSN)
}
