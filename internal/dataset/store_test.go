package dataset

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestStoreLoadsLazilyAndCaches(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	store := NewStore(path, nil)
	ctx := context.Background()

	rounds, err := store.Rounds(ctx)
	if err != nil {
		t.Fatalf("rounds: %v", err)
	}
	if len(rounds) != 4 {
		t.Fatalf("got %d rounds", len(rounds))
	}

	v1, err := store.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	v2, err := store.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v1 != v2 {
		t.Fatalf("version changed without a file change: %q -> %q", v1, v2)
	}
}

func TestStoreCompaniesSortedDistinct(t *testing.T) {
	store := NewStore(writeCSV(t, sampleCSV), nil)
	companies, err := store.Companies(context.Background())
	if err != nil {
		t.Fatalf("companies: %v", err)
	}
	want := []string{"Acme", "Beta Labs"}
	if len(companies) != len(want) {
		t.Fatalf("companies = %v", companies)
	}
	for i := range want {
		if companies[i] != want[i] {
			t.Fatalf("companies = %v, want %v", companies, want)
		}
	}
}

func TestStoreReloadsWhenFileChanges(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	store := NewStore(path, nil)
	ctx := context.Background()

	if _, err := store.Rounds(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	v1, _ := store.Version(ctx)

	extra := sampleCSV + "Gamma,2023-01-01,Series C,No,2000000,Growth Fund\n"
	if err := os.WriteFile(path, []byte(extra), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	// Make the fingerprint change deterministic even on coarse
	// filesystem timestamps.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	rounds, err := store.Rounds(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(rounds) != 5 {
		t.Fatalf("got %d rounds after reload, want 5", len(rounds))
	}
	v2, _ := store.Version(ctx)
	if v1 == v2 {
		t.Fatalf("version should change after the file changed")
	}

	companies, _ := store.Companies(ctx)
	if len(companies) != 3 {
		t.Fatalf("companies after reload = %v", companies)
	}
}

func TestStoreMissingFile(t *testing.T) {
	store := NewStore("/nonexistent/rounds.csv", nil)
	if _, err := store.Rounds(context.Background()); err == nil {
		t.Fatalf("expected error for missing dataset file")
	}
}
