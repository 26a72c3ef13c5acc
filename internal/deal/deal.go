// Package deal implements the draw state machine over a partitioned deck.
package deal

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidBatchSize indicates a draw request asked for a non-positive batch.
var ErrInvalidBatchSize = errors.New("batch size must be positive")

// ErrBrokenPartition indicates a card was duplicated or lost by a mutation.
var ErrBrokenPartition = errors.New("selected and remaining no longer partition the deck")

// State partitions the deck into two ordered token sequences. Selected keeps
// the order cards were drawn across all draws; Remaining keeps the initial
// deck order with drawn cards removed in place.
type State struct {
	Selected  []string
	Remaining []string
}

// NewState returns the initial state: nothing selected, the whole deck
// remaining in the given order.
func NewState(deck []string) State {
	remaining := make([]string, len(deck))
	copy(remaining, deck)
	return State{Remaining: remaining}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	clone := State{
		Selected:  make([]string, len(s.Selected)),
		Remaining: make([]string, len(s.Remaining)),
	}
	copy(clone.Selected, s.Selected)
	copy(clone.Remaining, s.Remaining)
	return clone
}

// Equal reports whether both partitions match by sequence, not just by set.
func (s State) Equal(other State) bool {
	if len(s.Selected) != len(other.Selected) || len(s.Remaining) != len(other.Remaining) {
		return false
	}
	for i, token := range s.Selected {
		if other.Selected[i] != token {
			return false
		}
	}
	for i, token := range s.Remaining {
		if other.Remaining[i] != token {
			return false
		}
	}
	return true
}

// DrawRequest describes one draw operation.
type DrawRequest struct {
	BatchSize int
	Seed      int64
}

// Draw moves a random batch of up to BatchSize cards from Remaining to
// Selected and returns the new state. The input state is not mutated.
//
// # Determinism
//
// Draw is deterministic with respect to the Seed field on DrawRequest. Given
// the same Seed and the same state, Draw always produces the same result.
//
// # Ordering
//
// The batch is chosen by uniformly shuffling a copy of Remaining and taking
// its head, so within one draw the batch order is the shuffle order. The new
// Selected is the old Selected with the batch appended. The new Remaining is
// the old Remaining with the batch removed in place, preserving the relative
// order of every untouched card.
//
// A remainder smaller than BatchSize is drawn whole; an empty remainder
// returns the state unchanged. Neither case is an error.
func Draw(state State, request DrawRequest) (State, error) {
	if request.BatchSize <= 0 {
		return State{}, ErrInvalidBatchSize
	}
	if len(state.Remaining) == 0 {
		return state.Clone(), nil
	}

	shuffled := make([]string, len(state.Remaining))
	copy(shuffled, state.Remaining)
	rng := rand.New(rand.NewSource(request.Seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	size := request.BatchSize
	if size > len(shuffled) {
		size = len(shuffled)
	}
	batch := shuffled[:size]

	drawn := make(map[string]bool, len(batch))
	for _, token := range batch {
		drawn[token] = true
	}

	next := State{
		Selected:  make([]string, 0, len(state.Selected)+len(batch)),
		Remaining: make([]string, 0, len(state.Remaining)-len(batch)),
	}
	next.Selected = append(next.Selected, state.Selected...)
	next.Selected = append(next.Selected, batch...)
	for _, token := range state.Remaining {
		if !drawn[token] {
			next.Remaining = append(next.Remaining, token)
		}
	}

	if err := next.check(len(state.Selected) + len(state.Remaining)); err != nil {
		return State{}, err
	}
	return next, nil
}

// check verifies the partition invariant: every card appears in exactly one
// sequence and none are lost.
func (s State) check(deckSize int) error {
	seen := make(map[string]bool, deckSize)
	for _, token := range s.Selected {
		if seen[token] {
			return fmt.Errorf("%w: %q appears twice", ErrBrokenPartition, token)
		}
		seen[token] = true
	}
	for _, token := range s.Remaining {
		if seen[token] {
			return fmt.Errorf("%w: %q appears twice", ErrBrokenPartition, token)
		}
		seen[token] = true
	}
	if len(seen) != deckSize {
		return fmt.Errorf("%w: expected %d cards, have %d", ErrBrokenPartition, deckSize, len(seen))
	}
	return nil
}
