package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"inflation/internal/core"
	applog "inflation/internal/log"
	"inflation/internal/rates"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

type (
	// RateResult is the outcome of a single-year rate lookup.
	RateResult struct {
		Year int             `json:"year"`
		Rate decimal.Decimal `json:"rate"`
	}

	// ValueChangeResult relates the value of money between two years.
	// The factor satisfies: value in start year = factor * value in end year.
	ValueChangeResult struct {
		StartYear   int             `json:"start_year"`
		EndYear     int             `json:"end_year"`
		Factor      decimal.Decimal `json:"value_change_factor"`
		Description string          `json:"description"`
	}

	// CurrentValueResult projects a past amount to the current year.
	CurrentValueResult struct {
		OriginalYear   int             `json:"original_year"`
		CurrentYear    int             `json:"current_year"`
		OriginalAmount decimal.Decimal `json:"original_amount"`
		CurrentValue   decimal.Decimal `json:"current_value"`
		Description    string          `json:"description"`
	}

	// YearsResult summarizes the data available in the current snapshot.
	YearsResult struct {
		AvailableYears []int `json:"available_years"`
		MinYear        int   `json:"min_year"`
		MaxYear        int   `json:"max_year"`
		TotalYears     int   `json:"total_years"`
	}
)

// InflationService computes compound value changes against an immutable
// rate-table snapshot. It is stateless; every call takes its own snapshot.
type InflationService struct {
	store rates.Store
	now   func() time.Time
}

func NewInflationService(store rates.Store) *InflationService {
	return &InflationService{store: store, now: time.Now}
}

// GetRate returns the inflation rate for a single year.
func (s *InflationService) GetRate(ctx context.Context, year int) (RateResult, error) {
	if err := core.ValidateYear(year, s.now()); err != nil {
		return RateResult{}, err
	}

	table, err := s.store.Snapshot(ctx)
	if err != nil {
		return RateResult{}, err
	}

	rate, ok := table.Rate(year)
	if !ok {
		details := "No data loaded"
		if min, max, ok := table.Range(); ok {
			details = fmt.Sprintf("Available years: %d-%d", min, max)
		}
		return RateResult{}, core.NotFoundf(details, "No inflation data found for year %d", year)
	}

	slog.InfoContext(ctx, "Retrieved inflation rate", applog.FieldYear, year, applog.FieldRate, rate)
	return RateResult{Year: year, Rate: rate}, nil
}

// ValueChange computes the compound purchasing-power factor between two
// years. Compounding starts the year after the earlier endpoint; the
// endpoint year itself never contributes a rate. For a backward pair
// (start > end) the forward product is inverted.
func (s *InflationService) ValueChange(ctx context.Context, startYear, endYear int) (ValueChangeResult, error) {
	now := s.now()
	if err := core.ValidateYear(startYear, now); err != nil {
		return ValueChangeResult{}, err
	}
	if err := core.ValidateYear(endYear, now); err != nil {
		return ValueChangeResult{}, err
	}
	if startYear == endYear {
		return ValueChangeResult{}, core.InvalidYearf(
			"Cannot calculate value change for the same year",
			"Start year and end year must be different")
	}

	table, err := s.store.Snapshot(ctx)
	if err != nil {
		return ValueChangeResult{}, err
	}

	factor, err := compoundFactor(table, startYear, endYear)
	if err != nil {
		return ValueChangeResult{}, err
	}

	slog.InfoContext(ctx, "Calculated value change",
		applog.FieldStartYear, startYear,
		applog.FieldEndYear, endYear,
		applog.FieldFactor, factor)

	return ValueChangeResult{
		StartYear: startYear,
		EndYear:   endYear,
		Factor:    factor,
		Description: fmt.Sprintf("$1.00 in %d is equivalent to $%s in %d",
			startYear, factor.StringFixed(2), endYear),
	}, nil
}

// CurrentValue computes what an amount from a past year is worth in the
// current year. The current year is implicit, so a non-past original year
// is an invalid input rather than an equal-years calculation error.
func (s *InflationService) CurrentValue(ctx context.Context, originalYear int, amount decimal.Decimal) (CurrentValueResult, error) {
	now := s.now()
	if err := core.ValidateYear(originalYear, now); err != nil {
		return CurrentValueResult{}, err
	}

	currentYear := now.Year()
	if originalYear >= currentYear {
		return CurrentValueResult{}, core.InvalidYearf(
			fmt.Sprintf("Current year is %d", currentYear),
			"Original year %d must be in the past", originalYear)
	}

	change, err := s.ValueChange(ctx, originalYear, currentYear)
	if err != nil {
		return CurrentValueResult{}, err
	}

	currentValue := amount.Mul(change.Factor)
	slog.InfoContext(ctx, "Calculated current value",
		applog.FieldYear, originalYear,
		"amount", amount,
		"current_year", currentYear,
		"current_value", currentValue)

	return CurrentValueResult{
		OriginalYear:   originalYear,
		CurrentYear:    currentYear,
		OriginalAmount: amount,
		CurrentValue:   currentValue,
		Description: fmt.Sprintf("$%s in %d is worth $%s in %d",
			amount.StringFixed(2), originalYear, currentValue.StringFixed(2), currentYear),
	}, nil
}

// AvailableYears summarizes the years covered by the current snapshot.
func (s *InflationService) AvailableYears(ctx context.Context) (YearsResult, error) {
	table, err := s.store.Snapshot(ctx)
	if err != nil {
		return YearsResult{}, err
	}

	result := YearsResult{
		AvailableYears: table.Years(),
		TotalYears:     table.Len(),
	}
	if min, max, ok := table.Range(); ok {
		result.MinYear, result.MaxYear = min, max
	}
	return result, nil
}

// TableVersion exposes the current snapshot version for cache keying.
func (s *InflationService) TableVersion(ctx context.Context) (uint64, error) {
	table, err := s.store.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return table.Version(), nil
}

// compoundFactor multiplies (1 + rate/100) over the inclusive range
// (lo+1 .. hi). Missing data fails on the first absent year in ascending
// order so error reporting is deterministic.
func compoundFactor(table *rates.Table, startYear, endYear int) (decimal.Decimal, error) {
	lo, hi := startYear, endYear
	invert := false
	if startYear > endYear {
		lo, hi = endYear, startYear
		invert = true
	}

	factor := one
	for year := lo + 1; year <= hi; year++ {
		rate, ok := table.Rate(year)
		if !ok {
			return decimal.Decimal{}, core.NotFoundf(
				"Cannot calculate value change with missing data",
				"Missing inflation data for year %d", year)
		}
		factor = factor.Mul(one.Add(rate.Div(hundred)))
	}

	if invert {
		if factor.IsZero() {
			return decimal.Decimal{}, core.CalculationErrorf(
				"Division by zero in backward calculation",
				"Cannot calculate backward value change")
		}
		factor = one.Div(factor)
	}
	return factor, nil
}
