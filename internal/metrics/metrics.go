// Package metrics is a small in-process recorder backing /metrics and the
// summary block in /health.
package metrics

import "sync"

// Names recorded by the orchestrator.
const (
	RequestsTotal    = "requests_total"
	RequestLatencyMs = "request_latency_ms"
	CacheHits        = "query_cache_hits"
)

// Stat is the summary for one metric name.
type Stat struct {
	Count int64   `json:"count"`
	Sum   float64 `json:"sum"`
	Avg   float64 `json:"average"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type series struct {
	count int64
	sum   float64
	min   float64
	max   float64
}

// Recorder aggregates named observations. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	series map[string]*series
}

func NewRecorder() *Recorder {
	return &Recorder{series: make(map[string]*series)}
}

func (r *Recorder) Record(name string, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.series[name]
	if !ok {
		r.series[name] = &series{count: 1, sum: value, min: value, max: value}
		return
	}
	s.count++
	s.sum += value
	if value < s.min {
		s.min = value
	}
	if value > s.max {
		s.max = value
	}
}

// Summary returns a snapshot of every recorded metric.
func (r *Recorder) Summary() map[string]Stat {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Stat, len(r.series))
	for name, s := range r.series {
		out[name] = Stat{
			Count: s.count,
			Sum:   s.sum,
			Avg:   s.sum / float64(s.count),
			Min:   s.min,
			Max:   s.max,
		}
	}
	return out
}

// TotalRequests is the count of recorded request latencies.
func (r *Recorder) TotalRequests() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.series[RequestLatencyMs]; ok {
		return s.count
	}
	return 0
}

// AvgLatency is the mean request latency in milliseconds.
func (r *Recorder) AvgLatency() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.series[RequestLatencyMs]; ok && s.count > 0 {
		return s.sum / float64(s.count)
	}
	return 0
}
