package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/metrics"
)

func TestFetchCachesUntilTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute, nil)
	c.now = func() time.Time { return now }

	calls := 0
	fn := func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := Fetch(context.Background(), c, "k", fn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one upstream call while fresh, got %d", calls)
	}

	now = now.Add(time.Minute)
	if _, err := Fetch(context.Background(), c, "k", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", calls)
	}
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute, nil)
	boom := errors.New("boom")
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := Fetch(context.Background(), c, "k", fn); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err := Fetch(context.Background(), c, "k", fn)
	if err != nil || v != 7 {
		t.Fatalf("expected retry to succeed with 7, got %d / %v", v, err)
	}
}

func TestFetchCollapsesConcurrentCallers(t *testing.T) {
	c := New(time.Minute, nil)
	var calls int32
	release := make(chan struct{})
	fn := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 1, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Fetch(context.Background(), c, "shared", fn)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected single upstream call, got %d", got)
	}
}

func TestInvalidateDropsPrefixOnly(t *testing.T) {
	c := New(time.Minute, nil)
	c.Set(BookingsKey("1"), "bookings")
	c.Set(BookingKey("1", "b1"), "booking")
	c.Set(CourtsKey("1"), "courts")
	c.Set(BookingsKey("10"), "other business")

	if dropped := c.Invalidate(BookingsKey("1")); dropped != 2 {
		t.Fatalf("expected 2 dropped entries, got %d", dropped)
	}
	if _, ok := c.Get(CourtsKey("1")); !ok {
		t.Fatalf("expected sibling key to survive")
	}
	if _, ok := c.Get(BookingsKey("10")); !ok {
		t.Fatalf("expected other business to survive")
	}
	if _, ok := c.Get(BookingKey("1", "b1")); ok {
		t.Fatalf("expected nested key to be dropped")
	}
}

func TestInvalidateDuringFetchSkipsStore(t *testing.T) {
	c := New(time.Minute, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(context.Context) (string, error) {
		close(started)
		<-release
		return "stale", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Fetch(context.Background(), c, "court/c1/availability-rules", fn)
	}()
	<-started
	c.Invalidate("court/c1")
	close(release)
	<-done

	if _, ok := c.Get("court/c1/availability-rules"); ok {
		t.Fatalf("expected invalidated in-flight result not to be stored")
	}
}

func TestFetchHonoursCallerCancellation(t *testing.T) {
	c := New(time.Minute, nil)
	release := make(chan struct{})
	defer close(release)
	fn := func(context.Context) (int, error) {
		<-release
		return 1, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := Fetch(ctx, c, "slow", fn); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestFetchSharedLoadSurvivesOneCallerLeaving(t *testing.T) {
	c := New(time.Minute, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fn := func(ctx context.Context) (string, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
			return "fresh", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	leaving, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Fetch(leaving, c, "business/1/bookings", fn)
		firstErr <- err
	}()
	<-started

	type result struct {
		val string
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := Fetch(context.Background(), c, "business/1/bookings", fn)
		second <- result{v, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected leaving caller to see its own cancellation, got %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	close(release)

	got := <-second
	if got.err != nil || got.val != "fresh" {
		t.Fatalf("expected remaining caller to get the shared result, got %q %v", got.val, got.err)
	}
	if v, ok := c.Get("business/1/bookings"); !ok || v != "fresh" {
		t.Fatalf("expected shared result to be cached, got %v %v", v, ok)
	}
}

func TestSetIfUnchangedRejectsStaleGeneration(t *testing.T) {
	c := New(time.Minute, nil)

	gen := c.Generation()
	if !c.SetIfUnchanged("business/1/courts", gen, "v1") {
		t.Fatalf("expected store with current generation")
	}

	gen = c.Generation()
	c.Invalidate("business/1")
	if c.SetIfUnchanged("business/1/courts", gen, "stale") {
		t.Fatalf("expected store to be refused after invalidation")
	}
	if _, ok := c.Get("business/1/courts"); ok {
		t.Fatalf("expected key to stay empty after refused store")
	}

	gen = c.Generation()
	c.Clear()
	if c.SetIfUnchanged("business/1/courts", gen, "stale") {
		t.Fatalf("expected store to be refused after clear")
	}
}

func TestFetchRecordsHitsAndMisses(t *testing.T) {
	rec := metrics.NewRecorder()
	c := New(time.Minute, rec)
	fn := func(context.Context) (int, error) { return 1, nil }

	_, _ = Fetch(context.Background(), c, "k", fn)
	_, _ = Fetch(context.Background(), c, "k", fn)

	hits, misses := rec.CacheStats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestClearDropsEverything(t *testing.T) {
	c := New(0, nil)
	if c.ttl != defaultTTL {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
	c.Set("a", 1)
	c.Set("b/c", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Len())
	}
}
