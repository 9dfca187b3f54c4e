package history

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/yokitheyo/declutter/internal/model"
)

const defaultLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS cleanup_history (
	id            TEXT PRIMARY KEY,
	directory     TEXT NOT NULL,
	extension     TEXT NOT NULL,
	cutoff        INTEGER NOT NULL,
	deleted_count INTEGER NOT NULL,
	freed_bytes   INTEGER NOT NULL,
	failed_count  INTEGER NOT NULL,
	created_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cleanup_history_created_at ON cleanup_history(created_at);
`

// Store keeps the outcome of executed cleanups in sqlite. It stores results
// only; scan candidate sets are never persisted.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	logger.Info("history store ready", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, rec model.CleanupRecord) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO cleanup_history
			(id, directory, extension, cutoff, deleted_count, freed_bytes, failed_count, created_at)
		VALUES
			(:id, :directory, :extension, :cutoff, :deleted_count, :freed_bytes, :failed_count, :created_at)`,
		rec)
	if err != nil {
		return fmt.Errorf("insert cleanup record: %w", err)
	}
	s.logger.Debug("cleanup recorded", zap.String("id", rec.ID))
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.CleanupRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	records := make([]model.CleanupRecord, 0)
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, directory, extension, cutoff, deleted_count, freed_bytes, failed_count, created_at
		FROM cleanup_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cleanup history: %w", err)
	}
	return records, nil
}
