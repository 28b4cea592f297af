package metrics

import (
	"sync"
	"testing"
)

func TestRecorderSummary(t *testing.T) {
	r := NewRecorder()
	r.Record(RequestLatencyMs, 10)
	r.Record(RequestLatencyMs, 30)
	r.Record(RequestLatencyMs, 20)
	r.Record(CacheHits, 1)

	s := r.Summary()

	lat := s[RequestLatencyMs]
	if lat.Count != 3 || lat.Sum != 60 || lat.Avg != 20 || lat.Min != 10 || lat.Max != 30 {
		t.Fatalf("unexpected latency stat: %+v", lat)
	}
	if s[CacheHits].Count != 1 {
		t.Fatalf("unexpected cache stat: %+v", s[CacheHits])
	}
}

func TestRecorderHealthViews(t *testing.T) {
	r := NewRecorder()
	if r.TotalRequests() != 0 || r.AvgLatency() != 0 {
		t.Fatal("fresh recorder must report zeros")
	}

	r.Record(RequestLatencyMs, 40)
	r.Record(RequestLatencyMs, 60)

	if got := r.TotalRequests(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
	if got := r.AvgLatency(); got != 50 {
		t.Fatalf("expected avg 50, got %f", got)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record(RequestsTotal, 1)
		}()
	}
	wg.Wait()

	if got := r.Summary()[RequestsTotal].Count; got != 50 {
		t.Fatalf("expected 50 observations, got %d", got)
	}
}
