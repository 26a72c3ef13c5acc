// Package csvfile provides a delimited-text record store.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/calherries/card-challenge/internal/records"
	"github.com/calherries/card-challenge/internal/storage"
)

var header = []string{"short_name", "is_selected", "order_index"}

// Store persists card records in a CSV file with a fixed header row. Write
// goes through a temp file and a rename, so a reader only ever observes a
// complete record set.
type Store struct {
	path string
}

// New returns a store backed by the CSV file at path. The file is only
// touched by Write and Read.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Write replaces the file contents with a header row and one row per record.
func (s *Store) Write(ctx context.Context, flat []records.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.path == "" {
		return fmt.Errorf("storage is not configured")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w: %v", storage.ErrUnavailable, err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range flat {
		row := []string{
			record.ShortName,
			strconv.FormatBool(record.Selected),
			strconv.Itoa(record.OrderIndex),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %q: %w", record.ShortName, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace file: %w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Read parses every data row back into a record, decoding the boolean and
// integer cells with general-purpose literal parsing.
func (s *Store) Read(ctx context.Context) ([]records.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.path == "" {
		return nil, fmt.Errorf("storage is not configured")
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open file: %w: %v", storage.ErrUnavailable, err)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row: %w", storage.ErrUnavailable)
	}
	if len(rows[0]) != len(header) {
		return nil, fmt.Errorf("unexpected header %v", rows[0])
	}
	for i, name := range header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("unexpected header %v", rows[0])
		}
	}

	flat := make([]records.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		selected, err := strconv.ParseBool(row[1])
		if err != nil {
			return nil, fmt.Errorf("parse is_selected %q: %w", row[1], err)
		}
		orderIndex, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("parse order_index %q: %w", row[2], err)
		}
		flat = append(flat, records.Record{
			ShortName:  row[0],
			Selected:   selected,
			OrderIndex: orderIndex,
		})
	}
	return flat, nil
}
