// Package roundtrip persists a draw state through a record store and proves
// the read-back reconstructs an identical state.
package roundtrip

import (
	"context"
	"errors"
	"fmt"

	"github.com/calherries/card-challenge/internal/deal"
	"github.com/calherries/card-challenge/internal/records"
	"github.com/calherries/card-challenge/internal/storage"
)

// ErrStateMismatch indicates the state reconstructed from a backend differs
// from the state that was persisted.
var ErrStateMismatch = errors.New("reconstructed state differs from original")

// Persist flattens the state and writes it to the store, replacing whatever
// the store held before. Callers treat a failure here as non-fatal.
func Persist(ctx context.Context, state deal.State, store storage.RecordStore) error {
	if store == nil {
		return fmt.Errorf("record store is required")
	}
	if err := store.Write(ctx, records.FromState(state)); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// Verify reads the store back, reconstructs a state from the records, and
// compares it to the original by sequence equality. Any read, transcoding,
// or comparison failure is an error; callers treat it as fatal.
func Verify(ctx context.Context, state deal.State, store storage.RecordStore) error {
	if store == nil {
		return fmt.Errorf("record store is required")
	}

	flat, err := store.Read(ctx)
	if err != nil {
		return fmt.Errorf("read back records: %w", err)
	}
	rebuilt, err := records.ToState(flat)
	if err != nil {
		return fmt.Errorf("reconstruct state: %w", err)
	}
	if !rebuilt.Equal(state) {
		return fmt.Errorf("%w: %d selected / %d remaining persisted, %d selected / %d remaining read back",
			ErrStateMismatch,
			len(state.Selected), len(state.Remaining),
			len(rebuilt.Selected), len(rebuilt.Remaining))
	}
	return nil
}
