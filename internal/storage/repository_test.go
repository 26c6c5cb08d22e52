package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"inflation/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "inflation.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRates() map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		2020: decimal.RequireFromString("1.4"),
		2021: decimal.RequireFromString("5.39"),
		2022: decimal.RequireFromString("6.5"),
	}
}

func TestReplaceAllThenLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleRates()); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	table, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("table has %d records, want 3", table.Len())
	}
	rate, ok := table.Rate(2021)
	if !ok {
		t.Fatal("rate for 2021 missing")
	}
	if !rate.Equal(decimal.RequireFromString("5.39")) {
		t.Errorf("rate for 2021 = %s, want 5.39", rate)
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Load(context.Background())
	if !errors.Is(err, core.ErrDataLoad) {
		t.Fatalf("Load() error = %v, want data load error", err)
	}
}

func TestSnapshot_LazyLoads(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleRates()); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	// No explicit Load; the first snapshot triggers one.
	table, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("table has %d records, want 3", table.Len())
	}
}

func TestReplaceAll_OverwritesPreviousRows(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleRates()); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	replacement := map[int]decimal.Decimal{
		1995: decimal.RequireFromString("2.8"),
	}
	if err := repo.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("second ReplaceAll() error = %v", err)
	}

	if err := repo.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	table, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("table has %d records, want 1", table.Len())
	}
	if _, ok := table.Rate(2021); ok {
		t.Error("replaced year 2021 still present")
	}
}

func TestLoad_SkipsInvalidRows(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleRates()); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	// Rows the importer would never write, but a hand-edited database might.
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO inflation_rates (year, rate) VALUES (1500, '2.0'), (2019, 'abc'), (2018, '99.9')`)
	if err != nil {
		t.Fatalf("insert bad rows: %v", err)
	}

	if err := repo.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	table, _ := repo.Snapshot(ctx)
	if table.Len() != 3 {
		t.Errorf("table has %d records, want the 3 valid ones", table.Len())
	}
}

func TestLoad_ReplacesSnapshotAtomically(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleRates()); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	old, _ := repo.Snapshot(ctx)

	if err := repo.ReplaceAll(ctx, map[int]decimal.Decimal{
		2023: decimal.RequireFromString("4.1"),
	}); err != nil {
		t.Fatalf("second ReplaceAll() error = %v", err)
	}
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	fresh, _ := repo.Snapshot(ctx)

	if old.Len() != 3 {
		t.Errorf("old snapshot mutated: %d records", old.Len())
	}
	if fresh.Len() != 1 {
		t.Errorf("fresh snapshot has %d records, want 1", fresh.Len())
	}
	if fresh.Version() <= old.Version() {
		t.Errorf("version did not advance: %d -> %d", old.Version(), fresh.Version())
	}
}
