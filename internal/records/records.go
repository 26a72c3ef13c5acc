// Package records converts draw state to and from the flat, backend-agnostic
// record shape exchanged with persistence adapters.
package records

import (
	"errors"
	"fmt"

	"github.com/calherries/card-challenge/internal/deal"
)

// ErrInconsistentRecords indicates a record set cannot be projected back to
// a valid draw state: a duplicated token, or order indexes that are not a
// contiguous zero-based sequence within a partition.
var ErrInconsistentRecords = errors.New("inconsistent record set")

// Record is one persisted card. OrderIndex is the card's position within its
// own partition, not a global index.
type Record struct {
	ShortName  string
	Selected   bool
	OrderIndex int
}

// FromState flattens a draw state into one record per card.
func FromState(state deal.State) []Record {
	flat := make([]Record, 0, len(state.Selected)+len(state.Remaining))
	for i, token := range state.Selected {
		flat = append(flat, Record{ShortName: token, Selected: true, OrderIndex: i})
	}
	for i, token := range state.Remaining {
		flat = append(flat, Record{ShortName: token, Selected: false, OrderIndex: i})
	}
	return flat
}

// ToState reconstructs the draw state a record set was derived from.
//
// Records are partitioned by Selected and ordered by OrderIndex within each
// partition. The indexes of a partition must form a contiguous sequence from
// zero and no token may appear more than once overall, otherwise
// ErrInconsistentRecords is returned.
func ToState(flat []Record) (deal.State, error) {
	selected, err := partition(flat, true)
	if err != nil {
		return deal.State{}, err
	}
	remaining, err := partition(flat, false)
	if err != nil {
		return deal.State{}, err
	}

	seen := make(map[string]bool, len(flat))
	for _, record := range flat {
		if seen[record.ShortName] {
			return deal.State{}, fmt.Errorf("%w: %q appears twice", ErrInconsistentRecords, record.ShortName)
		}
		seen[record.ShortName] = true
	}

	return deal.State{Selected: selected, Remaining: remaining}, nil
}

// partition extracts one partition's tokens ordered by OrderIndex, enforcing
// a contiguous zero-based index sequence.
func partition(flat []Record, selected bool) ([]string, error) {
	byIndex := map[int]string{}
	count := 0
	for _, record := range flat {
		if record.Selected != selected {
			continue
		}
		if _, exists := byIndex[record.OrderIndex]; exists {
			return nil, fmt.Errorf("%w: duplicate order index %d", ErrInconsistentRecords, record.OrderIndex)
		}
		byIndex[record.OrderIndex] = record.ShortName
		count++
	}

	tokens := make([]string, 0, count)
	for i := 0; i < count; i++ {
		token, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("%w: missing order index %d", ErrInconsistentRecords, i)
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
