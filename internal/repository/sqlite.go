package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/docstract/docstract/internal/common"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS extracted_texts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	filename   TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func openSQLite(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (DocumentStore, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, common.NewAppError("SQLITE_OPEN", "failed to open "+cfg.DSN, common.ErrPersistenceFailure)
	}
	// The store is session-scoped and serves one user at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, common.NewAppError("SQLITE_SCHEMA", "failed to ensure table", common.ErrPersistenceFailure)
	}

	return &sqliteStore{db: db, logger: logger}, nil
}

func (s *sqliteStore) Insert(ctx context.Context, filename, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extracted_texts (filename, content) VALUES (?, ?)`,
		filename, content,
	)
	if err != nil {
		s.logger.Error("sqlite insert failed", "filename", filename, "error", err)
		return common.NewAppError("SQLITE_INSERT", "insert failed for "+filename, common.ErrPersistenceFailure)
	}
	return nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close(ctx context.Context) error {
	return s.db.Close()
}
