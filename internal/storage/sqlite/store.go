// Package sqlite provides a SQLite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/calherries/card-challenge/internal/records"
	"github.com/calherries/card-challenge/internal/storage"
	_ "modernc.org/sqlite"
)

const table = "cards"

// Store persists card records in a single SQLite table. Write drops and
// recreates the table inside one transaction, so a reader only ever sees a
// complete record set.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite record store at the given path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w: %v", storage.ErrUnavailable, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w: %v", storage.ErrUnavailable, err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Write replaces all stored records with the given set.
func (s *Store) Write(ctx context.Context, flat []records.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w: %v", storage.ErrUnavailable, err)
	}

	statements := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s", table),
		fmt.Sprintf(`CREATE TABLE %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			short_name TEXT NOT NULL,
			order_index INTEGER NOT NULL,
			is_selected INTEGER NOT NULL
		)`, table),
	}
	for _, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recreate table: %w: %v", storage.ErrUnavailable, err)
		}
	}

	insert := fmt.Sprintf("INSERT INTO %s (short_name, order_index, is_selected) VALUES (?, ?, ?)", table)
	for _, record := range flat {
		selected := 0
		if record.Selected {
			selected = 1
		}
		if _, err := tx.ExecContext(ctx, insert, record.ShortName, record.OrderIndex, selected); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert record %q: %w: %v", record.ShortName, storage.ErrUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write: %w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Read returns every stored record with the boolean cell decoded from its
// integer column type.
func (s *Store) Read(ctx context.Context) ([]records.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := fmt.Sprintf("SELECT short_name, order_index, is_selected FROM %s", table)
	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read records: %w: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var flat []records.Record
	for rows.Next() {
		var record records.Record
		var selected int64
		if err := rows.Scan(&record.ShortName, &record.OrderIndex, &selected); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		record.Selected = selected != 0
		flat = append(flat, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w: %v", storage.ErrUnavailable, err)
	}
	return flat, nil
}
