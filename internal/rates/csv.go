package rates

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"inflation/internal/core"
	applog "inflation/internal/log"
)

// CSVStore loads the rate table from a flat file with a year,rate header.
// Malformed rows are skipped with a warning; a source that yields zero
// valid rows is a load error.
type CSVStore struct {
	path string

	mu    sync.Mutex // serializes loads
	table atomic.Pointer[Table]
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load implements Store.
func (s *CSVStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read(ctx)
	if err != nil {
		return err
	}

	table := NewTable(rows)
	s.table.Store(table)
	slog.InfoContext(ctx, "Loaded inflation rates from CSV",
		"path", s.path,
		applog.FieldRecords, table.Len(),
		applog.FieldVersion, table.Version())
	return nil
}

// Snapshot implements Store.
func (s *CSVStore) Snapshot(ctx context.Context) (*Table, error) {
	if t := s.table.Load(); t != nil {
		return t, nil
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s.table.Load(), nil
}

func (s *CSVStore) read(ctx context.Context) (map[int]decimal.Decimal, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, core.LoadErrorf(
			"Ensure the inflation data CSV file exists at the configured path",
			"Cannot open CSV file %s: %v", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.LoadErrorf(
			"The inflation data CSV file contains no data",
			"CSV file %s is empty", s.path)
	}
	if err != nil {
		return nil, core.LoadErrorf(
			"Check that the CSV file is properly formatted",
			"Failed to parse CSV header: %v", err)
	}

	yearCol, rateCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "year":
			yearCol = i
		case "rate":
			rateCol = i
		}
	}
	if yearCol < 0 || rateCol < 0 {
		return nil, core.LoadErrorf(
			fmt.Sprintf("Found columns: %v", header),
			"CSV file must contain 'year' and 'rate' columns")
	}

	rows := make(map[int]decimal.Decimal)
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparseable CSV row", "line", line, applog.FieldError, err)
			continue
		}
		year, rate, err := parseRow(record, yearCol, rateCol)
		if err != nil {
			slog.WarnContext(ctx, "Skipping invalid CSV row", "line", line, "row", record, applog.FieldError, err)
			continue
		}
		// Duplicate year keeps the last row processed.
		rows[year] = rate
	}

	if len(rows) == 0 {
		return nil, core.LoadErrorf(
			"Check that the CSV contains valid year and rate values",
			"No valid inflation data found in CSV file %s", s.path)
	}
	return rows, nil
}

func parseRow(record []string, yearCol, rateCol int) (int, decimal.Decimal, error) {
	if yearCol >= len(record) || rateCol >= len(record) {
		return 0, decimal.Decimal{}, fmt.Errorf("row has %d fields", len(record))
	}
	year, err := strconv.Atoi(strings.TrimSpace(record[yearCol]))
	if err != nil {
		return 0, decimal.Decimal{}, fmt.Errorf("parse year: %w", err)
	}
	if !core.ValidSourceYear(year) {
		return 0, decimal.Decimal{}, fmt.Errorf("year %d outside %d-%d", year, core.MinYear, core.MaxSourceYear)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(record[rateCol]))
	if err != nil {
		return 0, decimal.Decimal{}, fmt.Errorf("parse rate: %w", err)
	}
	if !core.ValidSourceRate(rate) {
		return 0, decimal.Decimal{}, fmt.Errorf("rate %s outside %s-%s", rate, core.MinRate, core.MaxRate)
	}
	return year, rate, nil
}
