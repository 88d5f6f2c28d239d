package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Entry describes one stored key without its value.
type Entry struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}

// entryRow mirrors a kv row for sqlx named binding and scanning.
type entryRow struct {
	Key       string `db:"key"`
	Value     []byte `db:"value"`
	Size      int64  `db:"size"`
	UpdatedAt string `db:"updated_at"`
}

// SQLiteKV stores opaque values under string keys in the kv table. Every Put
// replaces the whole value in a single statement.
type SQLiteKV struct {
	db *sqlx.DB

	// Prepared statements
	getValue    *sqlx.Stmt
	putValue    *sqlx.NamedStmt
	deleteValue *sqlx.Stmt
}

// NewSQLiteKV creates a SQLiteKV from an already-opened and migrated database.
func NewSQLiteKV(db *sqlx.DB) (*SQLiteKV, error) {
	s := &SQLiteKV{db: db}

	if err := s.prepareStatements(); err != nil {
		s.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteKV) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Preparex(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.putValue, err = s.db.PrepareNamed(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.deleteValue, err = s.db.Preparex(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	return nil
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *SQLiteKV) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	err = s.getValue.GetContext(ctx, &value, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	row := entryRow{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if _, err := s.putValue.ExecContext(ctx, row); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error; deleted
// reports whether a row was removed.
func (s *SQLiteKV) Delete(ctx context.Context, key string) (deleted bool, err error) {
	res, err := s.deleteValue.ExecContext(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Entries lists every stored key with its value size, ordered by key.
func (s *SQLiteKV) Entries(ctx context.Context) ([]Entry, error) {
	var rows []entryRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT key, length(value) AS size, updated_at FROM kv ORDER BY key`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		ts, _ := parseTimestamp(r.UpdatedAt)
		entries = append(entries, Entry{Key: r.Key, Size: r.Size, UpdatedAt: ts})
	}
	return entries, nil
}

// SizeBytes reports the on-disk size of the database as page_count * page_size.
func (s *SQLiteKV) SizeBytes(ctx context.Context) int64 {
	var pageCount, pageSize int64
	if err := s.db.GetContext(ctx, &pageCount, "PRAGMA page_count"); err != nil {
		return 0
	}
	if err := s.db.GetContext(ctx, &pageSize, "PRAGMA page_size"); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// Close releases all prepared statements. The underlying *sqlx.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteKV) Close() error {
	if s.getValue != nil {
		s.getValue.Close()
	}
	if s.putValue != nil {
		s.putValue.Close()
	}
	if s.deleteValue != nil {
		s.deleteValue.Close()
	}
	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}
