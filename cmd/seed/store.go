package main

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/agno-seed/internal/config"
	"github.com/JaimeStill/agno-seed/internal/store"
	"github.com/JaimeStill/agno-seed/pkg/database"
)

// openStore connects to the configured database, or returns an in-memory store
// for dry runs. The returned func releases the store.
func openStore(ctx context.Context, cfg *config.Config, dryRun bool, logger *slog.Logger) (store.System, func(), error) {
	if dryRun {
		logger.Info("dry run: seeding in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	conn, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		cctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := conn.Close(cctx); err != nil {
			logger.Warn("database disconnect failed", "error", err)
		}
	}

	st := store.NewMongo(conn.Database, cfg.Database.OperationTimeoutDuration(), logger)
	return st, closeFn, nil
}
