package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/flashflow/flashflow/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// SQLiteKV is a KV backed by a single-table SQLite database.
type SQLiteKV struct {
	db  *sql.DB
	log *logger.Logger
}

// OpenSQLite opens (creating if needed) the database at path and makes
// sure the kv table exists.
func OpenSQLite(path string) (*SQLiteKV, error) {
	log := logger.Default().WithPrefix("storage")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening database: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite best practice for single writer

	kv := &SQLiteKV{db: db, log: log}
	if err := kv.migrate(context.Background()); err != nil {
		log.Error("failed to create schema: %v", err)
		db.Close()
		return nil, err
	}

	log.Info("database ready")
	return kv, nil
}

func (s *SQLiteKV) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	return err
}

func (s *SQLiteKV) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sqlBuilder.
		Select("value").
		From("kv").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug("key not present: %s", key)
		return nil, nil
	}
	if err != nil {
		s.log.Error("failed to load %s: %v", key, err)
		return nil, err
	}
	return value, nil
}

func (s *SQLiteKV) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := sqlBuilder.
		Insert("kv").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("failed to save %s: %v", key, err)
		return err
	}
	s.log.Debug("saved %s (%d bytes)", key, len(value))
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	query, args, err := sqlBuilder.
		Delete("kv").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.Error("failed to delete %s: %v", key, err)
		return err
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	s.log.Debug("closing database connection")
	return s.db.Close()
}
