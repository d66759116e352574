package metrics

import (
	"errors"
	"testing"
	"time"
)

const bookingsEndpoint = "GET /businesses/:id/bookings"

func TestRecorderTracksBackendCallsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordBackendCall(bookingsEndpoint, 10*time.Millisecond, nil)
	rec.RecordBackendCall(bookingsEndpoint, 15*time.Millisecond, errors.New("boom"))

	snap := rec.Snapshot(bookingsEndpoint)
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
	if other := rec.Snapshot("GET /courts/:id/availability-rules"); other.Calls != 0 {
		t.Fatalf("expected untouched endpoint to be empty, got %+v", other)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit(bookingsEndpoint, 5*time.Second)
	rec.RecordRateLimit(bookingsEndpoint, 0)

	snap := rec.Snapshot(bookingsEndpoint)
	if snap.RateLimitHits != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", snap.RateLimitHits)
	}
	if snap.LastRetryAfter != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", snap.LastRetryAfter)
	}
}

func TestRecorderTracksCacheLookups(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCacheLookup(true)
	rec.RecordCacheLookup(false)
	rec.RecordCacheLookup(true)

	hits, misses := rec.CacheStats()
	if hits != 2 || misses != 1 {
		t.Fatalf("expected 2 hits and 1 miss, got %d/%d", hits, misses)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordBackendCall(bookingsEndpoint, time.Millisecond, nil)
	rec.RecordRateLimit(bookingsEndpoint, time.Second)
	rec.RecordCacheLookup(true)
	rec.RecordHTTPRequest("GET", "/calendar", 200, time.Millisecond)
	rec.RecordRefreshCycle(time.Millisecond, nil)
	if snap := rec.Snapshot(bookingsEndpoint); snap.Calls != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
