// Package demo parses demonstration flags and runs the draw-and-persist
// round-trip sequence.
package demo

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/pterm/pterm"

	"github.com/calherries/card-challenge/internal/cards"
	"github.com/calherries/card-challenge/internal/deal"
	entrypoint "github.com/calherries/card-challenge/internal/platform/cmd"
	"github.com/calherries/card-challenge/internal/random"
	"github.com/calherries/card-challenge/internal/roundtrip"
	"github.com/calherries/card-challenge/internal/storage"
	"github.com/calherries/card-challenge/internal/storage/csvfile"
	"github.com/calherries/card-challenge/internal/storage/sqlite"
)

// Config holds demonstration command configuration.
type Config struct {
	DBPath    string `env:"CARD_CHALLENGE_DB_PATH" envDefault:"cards.db"`
	CSVPath   string `env:"CARD_CHALLENGE_CSV_PATH" envDefault:"cards.csv"`
	BatchSize int    `env:"CARD_CHALLENGE_BATCH_SIZE" envDefault:"10"`
	Draws     int    `env:"CARD_CHALLENGE_DRAWS" envDefault:"2"`
	Seed      int64  `env:"CARD_CHALLENGE_SEED" envDefault:"0"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path of the SQLite database file")
	fs.StringVar(&cfg.CSVPath, "csv", cfg.CSVPath, "Path of the CSV record file")
	fs.IntVar(&cfg.BatchSize, "batch", cfg.BatchSize, "Number of cards per draw")
	fs.IntVar(&cfg.Draws, "draws", cfg.Draws, "Number of draws before persisting")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Fixed shuffle seed (0 generates one)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the full demonstration sequence: build the deck, draw the
// configured number of batches, then persist and verify the resulting state
// against both backends. A persist failure is logged and that backend is
// skipped; a verification failure aborts the run.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Draws < 0 {
		return fmt.Errorf("draw count must be non-negative")
	}

	seed := cfg.Seed
	if seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
		seed = generated
	}
	rng := rand.New(rand.NewSource(seed))

	state := deal.NewState(cards.NewDeck())
	for i := 0; i < cfg.Draws; i++ {
		next, err := deal.Draw(state, deal.DrawRequest{BatchSize: cfg.BatchSize, Seed: rng.Int63()})
		if err != nil {
			return fmt.Errorf("draw %d: %w", i+1, err)
		}
		if err := displayBatch(i+1, next.Selected[len(state.Selected):]); err != nil {
			return err
		}
		state = next
	}
	pterm.Info.Printfln("%d cards selected, %d remaining", len(state.Selected), len(state.Remaining))

	sqliteStore, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open sqlite backend: %w", err)
	}
	defer sqliteStore.Close()
	if err := verifyBackend(ctx, "sqlite", state, sqliteStore); err != nil {
		return err
	}

	csvStore, err := csvfile.New(cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("open csv backend: %w", err)
	}
	if err := verifyBackend(ctx, "csv", state, csvStore); err != nil {
		return err
	}

	return nil
}

// verifyBackend persists the state to one backend and checks the read-back.
// Persist failures are logged and skip verification; any verification
// failure is returned to abort the run.
func verifyBackend(ctx context.Context, name string, state deal.State, store storage.RecordStore) error {
	if err := roundtrip.Persist(ctx, state, store); err != nil {
		log.Printf("skipping %s verification, persist failed: %v", name, err)
		return nil
	}
	if err := roundtrip.Verify(ctx, state, store); err != nil {
		return fmt.Errorf("%s round trip: %w", name, err)
	}
	pterm.Success.Printfln("%s round trip verified", name)
	return nil
}

// displayBatch prints one draw's cards by their long names.
func displayBatch(number int, batch []string) error {
	lines := ""
	for _, token := range batch {
		card, err := cards.ParseShort(token)
		if err != nil {
			return fmt.Errorf("display batch %d: %w", number, err)
		}
		lines += card.LongName() + "\n"
	}
	box := pterm.DefaultBox.WithTitle(fmt.Sprintf("draw %d", number)).WithTitleTopCenter()
	box.Println(lines)
	return nil
}
