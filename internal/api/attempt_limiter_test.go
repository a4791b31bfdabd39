package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindowAndReset(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(2, time.Hour)
	key := "127.0.0.1"
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	limiter.recordFailure(key, now.Add(-2*time.Hour))
	limiter.recordFailure(key, now.Add(-30*time.Minute))
	if limiter.blocked(key, now) {
		t.Fatal("expected the expired failure to fall out of the window")
	}

	limiter.recordFailure(key, now.Add(-time.Minute))
	if !limiter.blocked(key, now) {
		t.Fatal("expected two recent failures to hit the limit")
	}
	if limiter.blocked("10.0.0.1", now) {
		t.Fatal("expected other keys to be unaffected")
	}

	limiter.reset(key)
	if limiter.blocked(key, now) {
		t.Fatal("expected no failures after reset")
	}
}
