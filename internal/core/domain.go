package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinYear is the earliest year the service accepts or loads.
	MinYear = 1800

	// MaxSourceYear bounds years accepted from data sources.
	MaxSourceYear = 2100

	// FutureYearSlack is how far past the current year an input year may
	// reach. Forecast tables legitimately contain a few future years.
	FutureYearSlack = 10
)

// Rate bounds, as percentages. Rows outside this range are treated as
// malformed source data.
var (
	MinRate = decimal.NewFromInt(-20)
	MaxRate = decimal.NewFromInt(50)
)

// MaxYear returns the latest acceptable input year relative to now.
func MaxYear(now time.Time) int {
	return now.Year() + FutureYearSlack
}

// ValidateYear checks an input year against the service bounds.
// It is applied to every year-valued input before any data lookup.
func ValidateYear(year int, now time.Time) error {
	max := MaxYear(now)
	if year < MinYear || year > max {
		return InvalidYearf("Year must be within reasonable historical bounds",
			"Year %d is outside valid range (%d-%d)", year, MinYear, max)
	}
	return nil
}

// ValidSourceYear reports whether a year read from a data source is usable.
func ValidSourceYear(year int) bool {
	return year >= MinYear && year <= MaxSourceYear
}

// ValidSourceRate reports whether a rate read from a data source is usable.
func ValidSourceRate(rate decimal.Decimal) bool {
	return rate.GreaterThanOrEqual(MinRate) && rate.LessThanOrEqual(MaxRate)
}
