package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// defaultAmount is used when a current-value request omits the amount.
var defaultAmount = decimal.RequireFromString("1.00")

type (
	valueChangeRequest struct {
		StartYear int `json:"start_year"`
		EndYear   int `json:"end_year"`
	}

	currentValueRequest struct {
		OriginalYear int              `json:"original_year"`
		Amount       *decimal.Decimal `json:"amount"`
	}
)

// parseIntParam parses a required integer from a path or query value.
func parseIntParam(name, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer", name)
	}
	return n, nil
}

// parseAmount parses an optional positive decimal amount; empty input
// falls back to the default of 1.00.
func parseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultAmount, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount must be a decimal number")
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}

// parseValueChangeQuery reads start_year/end_year from query parameters.
func parseValueChangeQuery(r *http.Request) (valueChangeRequest, error) {
	var req valueChangeRequest
	var err error
	if req.StartYear, err = parseIntParam("start_year", r.URL.Query().Get("start_year")); err != nil {
		return req, err
	}
	if req.EndYear, err = parseIntParam("end_year", r.URL.Query().Get("end_year")); err != nil {
		return req, err
	}
	return req, nil
}

// parseValueChangeBody reads a JSON value-change request.
func parseValueChangeBody(r *http.Request) (valueChangeRequest, error) {
	var req valueChangeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return req, err
	}
	return req, nil
}

// parseCurrentValueQuery reads original_year and optional amount from
// query parameters.
func parseCurrentValueQuery(r *http.Request) (int, decimal.Decimal, error) {
	year, err := parseIntParam("original_year", r.URL.Query().Get("original_year"))
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	return year, amount, nil
}

// parseCurrentValueBody reads a JSON current-value request. A missing
// amount defaults to 1.00; an explicit non-positive amount is rejected.
func parseCurrentValueBody(r *http.Request) (int, decimal.Decimal, error) {
	var req currentValueRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return 0, decimal.Decimal{}, err
	}
	amount := defaultAmount
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return 0, decimal.Decimal{}, fmt.Errorf("amount must be positive")
		}
		amount = *req.Amount
	}
	return req.OriginalYear, amount, nil
}

// decodeJSONBody decodes a request body, rejecting unknown fields and
// trailing garbage.
func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid JSON body: unexpected trailing data")
	}
	return nil
}
