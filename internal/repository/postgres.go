package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docstract/docstract/internal/common"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS extracted_texts (
	id         BIGSERIAL PRIMARY KEY,
	filename   TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func openPostgres(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (DocumentStore, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, common.NewAppError("PG_CONFIG", "invalid dsn", common.ErrPersistenceFailure)
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "docstract"

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, common.NewAppError("PG_CONNECT", "failed to connect", common.ErrPersistenceFailure)
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, common.NewAppError("PG_SCHEMA", "failed to ensure table", common.ErrPersistenceFailure)
	}

	return &postgresStore{pool: pool, logger: logger}, nil
}

func (s *postgresStore) Insert(ctx context.Context, filename, content string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO extracted_texts (filename, content) VALUES ($1, $2)`,
		filename, content,
	)
	if err != nil {
		s.logger.Error("postgres insert failed", "filename", filename, "error", err)
		return common.NewAppError("PG_INSERT", "insert failed for "+filename, common.ErrPersistenceFailure)
	}
	return nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *postgresStore) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}
