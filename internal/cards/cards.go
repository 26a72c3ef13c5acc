// Package cards maps between structured card identities and their two
// textual forms, and builds the full deck of short-name tokens.
package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedToken indicates a short-name token could not be parsed.
var ErrMalformedToken = errors.New("malformed card token")

// Suit identifies one of the four card suits.
type Suit int

const (
	Hearts Suit = iota
	Clubs
	Diamonds
	Spades
)

// Suits lists every suit in deck-construction order.
var Suits = []Suit{Hearts, Clubs, Diamonds, Spades}

// Ranks lists every rank token in deck-construction order. Ranks are opaque
// tokens, never coerced to numbers; "0" is the zero/joker placeholder.
var Ranks = []string{"0", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Name returns the long suit name used in display form.
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// Code returns the two-letter suit code used in short-name tokens.
func (s Suit) Code() string {
	switch s {
	case Hearts:
		return "HE"
	case Clubs:
		return "CL"
	case Diamonds:
		return "DI"
	case Spades:
		return "SP"
	default:
		return "??"
	}
}

// Card is an immutable (suit, rank) identity.
type Card struct {
	Rank string
	Suit Suit
}

// ShortName returns the compact token form, e.g. "9 HE".
func (c Card) ShortName() string {
	return c.Rank + " " + c.Suit.Code()
}

// LongName returns the display form, e.g. "9 of hearts".
func (c Card) LongName() string {
	return c.Rank + " of " + c.Suit.Name()
}

// ParseShort parses a short-name token back into a card identity.
//
// The token must be "<rank> <suit-code>" with a rank from Ranks and one of
// the four suit codes. Anything else fails with ErrMalformedToken.
func ParseShort(token string) (Card, error) {
	fields := strings.Split(token, " ")
	if len(fields) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}

	rank := fields[0]
	if !validRank(rank) {
		return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrMalformedToken, token)
	}

	for _, suit := range Suits {
		if suit.Code() == fields[1] {
			return Card{Rank: rank, Suit: suit}, nil
		}
	}
	return Card{}, fmt.Errorf("%w: unknown suit code in %q", ErrMalformedToken, token)
}

// NewDeck builds the full deck as short-name tokens, one per (suit, rank)
// pair, in suit-major order. Pure and deterministic.
func NewDeck() []string {
	deck := make([]string, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit}.ShortName())
		}
	}
	return deck
}

func validRank(rank string) bool {
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}
