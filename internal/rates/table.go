package rates

import (
	"sort"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

var tableVersion atomic.Uint64

// Table is an immutable year→rate snapshot. A loader builds a complete
// Table and publishes it with an atomic pointer swap; readers never
// observe a partially built table.
type Table struct {
	version uint64
	rates   map[int]decimal.Decimal
	years   []int
}

// NewTable builds a snapshot from the given rows. The map is copied, so
// the caller may keep mutating its own copy.
func NewTable(rows map[int]decimal.Decimal) *Table {
	rates := make(map[int]decimal.Decimal, len(rows))
	years := make([]int, 0, len(rows))
	for year, rate := range rows {
		rates[year] = rate
		years = append(years, year)
	}
	sort.Ints(years)
	return &Table{
		version: tableVersion.Add(1),
		rates:   rates,
		years:   years,
	}
}

// Version identifies this snapshot. Versions increase with every load,
// which lets caches key on the table they were computed against.
func (t *Table) Version() uint64 {
	return t.version
}

// Rate returns the rate for a year, if present.
func (t *Table) Rate(year int) (decimal.Decimal, bool) {
	rate, ok := t.rates[year]
	return rate, ok
}

// All returns a copy of the full year→rate mapping.
func (t *Table) All() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(t.rates))
	for year, rate := range t.rates {
		out[year] = rate
	}
	return out
}

// Years returns the years with data, ascending.
func (t *Table) Years() []int {
	return append([]int(nil), t.years...)
}

// Range returns the lowest and highest year with data.
func (t *Table) Range() (min, max int, ok bool) {
	if len(t.years) == 0 {
		return 0, 0, false
	}
	return t.years[0], t.years[len(t.years)-1], true
}

// Len returns the number of years with data.
func (t *Table) Len() int {
	return len(t.rates)
}
