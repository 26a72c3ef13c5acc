package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/calherries/card-challenge/internal/records"
	"github.com/calherries/card-challenge/internal/storage"
)

func TestWriteReadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir() + "/cards.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	flat := []records.Record{
		{ShortName: "Q SP", Selected: true, OrderIndex: 0},
		{ShortName: "K CL", Selected: false, OrderIndex: 0},
	}
	if err := store.Write(context.Background(), flat); err != nil {
		t.Fatalf("write records: %v", err)
	}

	got, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(got) != len(flat) {
		t.Fatalf("expected %d records, got %d", len(flat), len(got))
	}
	seen := map[records.Record]bool{}
	for _, record := range got {
		seen[record] = true
	}
	for _, record := range flat {
		if !seen[record] {
			t.Fatalf("missing record %+v in %+v", record, got)
		}
	}
}

func TestWriteReplacesPriorRecords(t *testing.T) {
	store, err := Open(t.TempDir() + "/cards.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	first := []records.Record{
		{ShortName: "Q SP", Selected: true, OrderIndex: 0},
		{ShortName: "K CL", Selected: false, OrderIndex: 0},
	}
	if err := store.Write(context.Background(), first); err != nil {
		t.Fatalf("write first set: %v", err)
	}
	second := []records.Record{
		{ShortName: "9 HE", Selected: false, OrderIndex: 0},
	}
	if err := store.Write(context.Background(), second); err != nil {
		t.Fatalf("write second set: %v", err)
	}

	got, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(got) != 1 || got[0] != second[0] {
		t.Fatalf("expected only %+v, got %+v", second[0], got)
	}
}

func TestReadBeforeAnyWriteIsUnavailable(t *testing.T) {
	store, err := Open(t.TempDir() + "/cards.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := store.Read(context.Background()); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestWriteEmptySetReadsBackEmpty(t *testing.T) {
	store, err := Open(t.TempDir() + "/cards.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Write(context.Background(), nil); err != nil {
		t.Fatalf("write empty set: %v", err)
	}
	got, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
}
