package http

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()
	metrics := &securityMetrics{}

	for i := 0; i < requestsPerMinute; i++ {
		if !rl.allow("10.0.0.1", metrics) {
			t.Fatalf("request %d denied below the limit", i+1)
		}
	}
	if rl.allow("10.0.0.1", metrics) {
		t.Error("request above the limit was allowed")
	}
	if hits := atomic.LoadInt64(&metrics.rateLimitHits); hits != 1 {
		t.Errorf("rateLimitHits = %d, want 1", hits)
	}
}

func TestRateLimiter_TracksClientsIndependently(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < requestsPerMinute+1; i++ {
		rl.allow("10.0.0.1", nil)
	}
	if !rl.allow("10.0.0.2", nil) {
		t.Error("second client denied by first client's limit")
	}
}

func TestRateLimiter_ResetsAfterWindow(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < requestsPerMinute+1; i++ {
		rl.allow("10.0.0.1", nil)
	}

	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastRequest = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.allow("10.0.0.1", nil) {
		t.Error("request denied after the window elapsed")
	}
}

func TestRateLimiter_CleanupRemovesStaleEntries(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	rl.allow("10.0.0.1", nil)
	rl.allow("10.0.0.2", nil)

	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastRequest = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.cleanupStaleEntries()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["10.0.0.1"]; ok {
		t.Error("stale client entry survived cleanup")
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Error("fresh client entry was removed")
	}
}
