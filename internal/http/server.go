// Package http exposes the inflation calculations as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	applog "inflation/internal/log"
	"inflation/internal/middleware/security"
	"inflation/internal/middleware/trace"
	"inflation/internal/services"
)

const (
	serviceName    = "inflation-api"
	serviceVersion = "0.1.0"
)

type Server struct {
	http.Server

	service   *services.InflationService
	tracer    *trace.Middleware
	startedAt time.Time

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Value-change responses are cached per table snapshot.
	changeCache      *changeCache
	stopCacheCleanup chan struct{}

	shutdownOnce sync.Once
}

func NewServer(addr string, service *services.InflationService) *Server {
	mux := http.NewServeMux()
	metrics := &securityMetrics{}
	headersMw := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	traceMw := trace.NewMiddleware(metrics.extractClientIP)

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: traceMw.Middleware(headersMw.Middleware(mux)),
		},
		service:          service,
		tracer:           traceMw,
		startedAt:        time.Now(),
		rateLimiter:      newRateLimiter(),
		metrics:          metrics,
		changeCache:      newChangeCache(500, 10*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/rate/{year}", s.limited(s.handleGetRate))
	mux.HandleFunc("GET /api/v1/value-change", s.limited(s.handleValueChangeGet))
	mux.HandleFunc("POST /api/v1/value-change", s.limited(s.handleValueChangePost))
	mux.HandleFunc("GET /api/v1/current-value", s.limited(s.handleCurrentValueGet))
	mux.HandleFunc("POST /api/v1/current-value", s.limited(s.handleCurrentValuePost))
	mux.HandleFunc("GET /api/v1/years", s.limited(s.handleYears))

	return s
}

// limited applies the per-IP rate limit to a handler.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := s.metrics.extractClientIP(r)
		if !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: errorBody{
				Message: "Rate limit exceeded",
				Details: "Please try again later",
			}})
			return
		}
		next(w, r)
	}
}

// startCacheCleanup periodically evicts expired value-change entries.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.changeCache.cleanExpired(); cleaned > 0 {
				slog.Debug("Evicted expired value-change cache entries", "count", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
