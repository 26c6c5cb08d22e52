// Package storage provides the SQLite-backed inflation-rate store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"inflation/internal/core"
	applog "inflation/internal/log"
	"inflation/internal/rates"
)

// SQLiteRepository implements rates.Store on top of a SQLite database.
// Reads go through immutable Table snapshots just like the CSV store;
// the database is only touched on Load and on writes from the importer.
type SQLiteRepository struct {
	db *sql.DB

	mu    sync.Mutex // serializes loads
	table atomic.Pointer[rates.Table]
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements rates.Store.
func (r *SQLiteRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `SELECT year, rate FROM inflation_rates ORDER BY year`)
	if err != nil {
		return core.LoadErrorf(
			"Check that the database file is readable and migrated",
			"Cannot query inflation rates: %v", err)
	}
	defer rows.Close()

	data := make(map[int]decimal.Decimal)
	for rows.Next() {
		var year int
		var rateStr string
		if err := rows.Scan(&year, &rateStr); err != nil {
			return core.LoadErrorf(
				"Check the inflation_rates table schema",
				"Cannot scan inflation rate row: %v", err)
		}
		rate, err := decimal.NewFromString(rateStr)
		if err != nil || !core.ValidSourceYear(year) || !core.ValidSourceRate(rate) {
			slog.WarnContext(ctx, "Skipping invalid inflation rate row",
				applog.FieldYear, year, applog.FieldRate, rateStr, applog.FieldError, err)
			continue
		}
		data[year] = rate
	}
	if err := rows.Err(); err != nil {
		return core.LoadErrorf(
			"Check that the database file is not corrupt",
			"Error reading inflation rates: %v", err)
	}
	if len(data) == 0 {
		return core.LoadErrorf(
			"Import data with inflation-import before starting the service",
			"No valid inflation data found in database")
	}

	table := rates.NewTable(data)
	r.table.Store(table)
	slog.InfoContext(ctx, "Loaded inflation rates from SQLite",
		applog.FieldRecords, table.Len(),
		applog.FieldVersion, table.Version())
	return nil
}

// Snapshot implements rates.Store.
func (r *SQLiteRepository) Snapshot(ctx context.Context) (*rates.Table, error) {
	if t := r.table.Load(); t != nil {
		return t, nil
	}
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	return r.table.Load(), nil
}

// ReplaceAll swaps the stored table contents for the given rows in one
// transaction. Used by the import CLI; readers are unaffected until the
// next Load.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, data map[int]decimal.Decimal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inflation_rates`); err != nil {
		return fmt.Errorf("clear inflation rates: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO inflation_rates (year, rate, updated_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for year, rate := range data {
		if _, err := stmt.ExecContext(ctx, year, rate.String(), now); err != nil {
			return fmt.Errorf("insert rate for year %d: %w", year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Replaced inflation rates in SQLite", applog.FieldRecords, len(data))
	return nil
}
