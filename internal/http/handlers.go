package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// handleHealth performs a basic liveness check and reports request metrics.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	traffic := s.tracer.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
		"uptime":  time.Since(s.startedAt).String(),
		"metrics": map[string]int64{
			"total_requests":      traffic.TotalRequests,
			"rate_limit_hits":     s.metrics.RateLimitHits(),
			"invalid_ip_attempts": s.metrics.InvalidIPAttempts(),
		},
	})
}

// handleGetRate serves GET /api/v1/rate/{year}.
func (s *Server) handleGetRate(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntParam("year", r.PathValue("year"))
	if err != nil {
		writeBadRequest(w, err.Error(), "Year must be an integer path segment")
		return
	}

	result, svcErr := s.service.GetRate(r.Context(), year)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleValueChangeGet serves GET /api/v1/value-change.
func (s *Server) handleValueChangeGet(w http.ResponseWriter, r *http.Request) {
	req, err := parseValueChangeQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error(), "Provide start_year and end_year query parameters")
		return
	}
	s.serveValueChange(w, r, req)
}

// handleValueChangePost serves POST /api/v1/value-change.
func (s *Server) handleValueChangePost(w http.ResponseWriter, r *http.Request) {
	req, err := parseValueChangeBody(r)
	if err != nil {
		writeBadRequest(w, err.Error(), "Body must be JSON with start_year and end_year")
		return
	}
	s.serveValueChange(w, r, req)
}

func (s *Server) serveValueChange(w http.ResponseWriter, r *http.Request, req valueChangeRequest) {
	// Results are cached per table snapshot; a reload bumps the version
	// and naturally misses.
	version, err := s.service.TableVersion(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	key := fmt.Sprintf("vc:%d:%d:%d", version, req.StartYear, req.EndYear)
	if cached, ok := s.changeCache.get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, svcErr := s.service.ValueChange(r.Context(), req.StartYear, req.EndYear)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	s.changeCache.set(key, result)
	writeJSON(w, http.StatusOK, result)
}

// handleCurrentValueGet serves GET /api/v1/current-value.
func (s *Server) handleCurrentValueGet(w http.ResponseWriter, r *http.Request) {
	year, amount, err := parseCurrentValueQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error(), "Provide original_year and an optional positive amount")
		return
	}
	s.serveCurrentValue(w, r, year, amount)
}

// handleCurrentValuePost serves POST /api/v1/current-value.
func (s *Server) handleCurrentValuePost(w http.ResponseWriter, r *http.Request) {
	year, amount, err := parseCurrentValueBody(r)
	if err != nil {
		writeBadRequest(w, err.Error(), "Body must be JSON with original_year and an optional positive amount")
		return
	}
	s.serveCurrentValue(w, r, year, amount)
}

func (s *Server) serveCurrentValue(w http.ResponseWriter, r *http.Request, year int, amount decimal.Decimal) {
	result, err := s.service.CurrentValue(r.Context(), year, amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleYears serves GET /api/v1/years.
func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.AvailableYears(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, yearsResponse{
		AvailableYears: result.AvailableYears,
		YearRange: yearRange{
			MinYear: result.MinYear,
			MaxYear: result.MaxYear,
		},
		TotalYears: result.TotalYears,
	})
}

type (
	yearRange struct {
		MinYear int `json:"min_year"`
		MaxYear int `json:"max_year"`
	}

	yearsResponse struct {
		AvailableYears []int     `json:"available_years"`
		YearRange      yearRange `json:"year_range"`
		TotalYears     int       `json:"total_years"`
	}
)
