// Package repository persists extracted documents. The store is a plain
// append-only document sink: one {filename, content} insert per save, no
// dedup, no updates.
package repository

import (
	"context"
	"log/slog"
	"strings"

	"github.com/docstract/docstract/internal/common"
)

// DocumentStore is the persistence capability injected into the service.
// Implementations are constructed once at startup and safe to treat as
// read-only handles afterwards.
type DocumentStore interface {
	// Insert appends one document. Saving the same filename twice inserts
	// twice; idempotence is the caller's concern.
	Insert(ctx context.Context, filename, content string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open selects a store backend by DSN scheme: mongodb:// (and
// mongodb+srv://) for MongoDB, postgres:// for Postgres, anything else is
// treated as a SQLite file path.
func Open(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (DocumentStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch {
	case strings.HasPrefix(cfg.DSN, "mongodb://"), strings.HasPrefix(cfg.DSN, "mongodb+srv://"):
		logger.Info("opening mongodb document store", "dsn", cfg.DSN)
		return openMongo(ctx, cfg, logger)
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		logger.Info("opening postgres document store", "dsn", cfg.DSN)
		return openPostgres(ctx, cfg, logger)
	default:
		logger.Info("opening sqlite document store", "path", cfg.DSN)
		return openSQLite(ctx, cfg, logger)
	}
}
