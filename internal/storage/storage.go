// Package storage defines the persistence contract shared by the relational
// and flat-file record adapters.
package storage

import (
	"context"
	"errors"

	"github.com/calherries/card-challenge/internal/records"
)

// ErrUnavailable indicates the backend is unreachable or its schema or file
// does not exist yet.
var ErrUnavailable = errors.New("persistence backend unavailable")

// RecordStore persists flat card records.
//
// Write replaces every previously stored record with exactly the given set;
// a subsequent Read observes either the prior complete set or the new one,
// never a mix. Read returns every stored record with fields decoded to their
// semantic types regardless of the backend's native cell types.
type RecordStore interface {
	Write(ctx context.Context, flat []records.Record) error
	Read(ctx context.Context) ([]records.Record, error)
}
