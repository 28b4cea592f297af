package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestLocalRoundTrip(t *testing.T) {
	c := NewLocal(time.Minute, 10)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set(ctx, "k", []byte("v"))
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected hit with v, got %q ok=%v", got, ok)
	}
}

func TestLocalTTLExpiry(t *testing.T) {
	c := NewLocal(time.Minute, 10)
	ctx := context.Background()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(ctx, "k", []byte("v"))

	c.now = func() time.Time { return base.Add(59 * time.Second) }
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected expiry after TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not removed, len=%d", c.Len())
	}
}

func TestLocalEvictsOldestInBulk(t *testing.T) {
	c := NewLocal(time.Hour, 100)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i <= 100; i++ {
		tick := base.Add(time.Duration(i) * time.Second)
		c.now = func() time.Time { return tick }
		c.Set(ctx, fmt.Sprintf("k%03d", i), []byte("v"))
	}

	// Overflowing by one drops a tenth of the bound, oldest first.
	if c.Len() != 91 {
		t.Fatalf("expected 91 entries after eviction, got %d", c.Len())
	}
	c.now = func() time.Time { return base.Add(time.Hour / 2) }
	if _, ok := c.Get(ctx, "k000"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	if _, ok := c.Get(ctx, "k009"); ok {
		t.Fatal("tenth-oldest entry should have been evicted")
	}
	if _, ok := c.Get(ctx, "k010"); !ok {
		t.Fatal("entries past the eviction batch must survive")
	}
	if _, ok := c.Get(ctx, "k100"); !ok {
		t.Fatal("newest entry must survive")
	}
}

// fakeCache records traffic so tiering behavior can be asserted.
type fakeCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	f.gets++
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte) {
	f.sets++
	f.data[key] = value
}

func (f *fakeCache) Close() error { return nil }

func TestTieredLocalHitSkipsSecondary(t *testing.T) {
	secondary := newFakeCache()
	c := NewTiered(NewLocal(time.Minute, 10), secondary)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	if secondary.sets != 1 {
		t.Fatal("writes must reach the secondary tier")
	}

	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit")
	}
	if secondary.gets != 0 {
		t.Fatal("local hit must not consult the secondary tier")
	}
}

func TestTieredBackfillsLocal(t *testing.T) {
	local := NewLocal(time.Minute, 10)
	secondary := newFakeCache()
	secondary.data["k"] = []byte("v")
	c := NewTiered(local, secondary)
	ctx := context.Background()

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected secondary hit, got %q ok=%v", got, ok)
	}
	if local.Len() != 1 {
		t.Fatal("secondary hit must backfill the local tier")
	}

	c.Get(ctx, "k")
	if secondary.gets != 1 {
		t.Fatalf("backfilled key should be served locally, secondary gets=%d", secondary.gets)
	}
}

func TestTieredNilSecondary(t *testing.T) {
	c := NewTiered(NewLocal(time.Minute, 10), nil)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	if got, ok := c.Get(ctx, "k"); !ok || string(got) != "v" {
		t.Fatalf("expected local-only round trip, got %q ok=%v", got, ok)
	}
	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
