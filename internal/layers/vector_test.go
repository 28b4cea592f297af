package layers

import (
	"context"
	"errors"
	"testing"

	"github.com/strata-rag/strata/internal/vectorstore"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vector, f.err
}

type fakeIndex struct {
	calls     int
	vector    []float32
	topK      int
	threshold float64
	filter    map[string]string
	hits      []vectorstore.SearchResult
	err       error
	panics    bool
}

func (f *fakeIndex) Search(_ context.Context, vector []float32, topK int, scoreThreshold float64, filter map[string]string) ([]vectorstore.SearchResult, error) {
	f.calls++
	f.vector = vector
	f.topK = topK
	f.threshold = scoreThreshold
	f.filter = filter
	if f.panics {
		panic("index blew up")
	}
	return f.hits, f.err
}

func TestVectorLayerMapsHits(t *testing.T) {
	index := &fakeIndex{
		hits: []vectorstore.SearchResult{
			{
				ID:    "p1",
				Score: 0.91,
				Payload: map[string]any{
					"content": "raft elects a single leader per term",
					"source":  "notes/raft.md",
				},
			},
			{ID: "p2", Score: 0.7, Payload: map[string]any{"content": 42}},
		},
	}
	l := NewVectorLayer(&fakeEmbedder{vector: []float32{0.1, 0.2}}, index, 10, 0.6, discardLogger())

	got := l.Retrieve(context.Background(), Request{ThreadID: "t1", Query: "raft leader election"})

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Content != "raft elects a single leader per term" || got[0].Source != "notes/raft.md" {
		t.Fatalf("bad payload mapping: %+v", got[0])
	}
	if got[0].Similarity != 0.91 || got[0].EmbeddingID != "p1" {
		t.Fatalf("bad score mapping: %+v", got[0])
	}
	if got[1].Content != "" {
		t.Fatalf("non-string payload must map to empty content, got %q", got[1].Content)
	}
	if index.topK != 10 || index.threshold != 0.6 {
		t.Fatalf("search params not forwarded: topK=%d threshold=%f", index.topK, index.threshold)
	}
	if index.filter == nil || index.filter["threadId"] != "t1" {
		t.Fatalf("expected threadId filter, got %v", index.filter)
	}
}

func TestVectorLayerNoThreadFilter(t *testing.T) {
	index := &fakeIndex{}
	l := NewVectorLayer(&fakeEmbedder{vector: []float32{0.1}}, index, 10, 0.6, discardLogger())

	l.Retrieve(context.Background(), Request{Query: "raft"})

	if index.filter != nil {
		t.Fatalf("expected no filter without a threadId, got %v", index.filter)
	}
}

func TestVectorLayerMaxResultsOverridesTopK(t *testing.T) {
	index := &fakeIndex{}
	l := NewVectorLayer(&fakeEmbedder{vector: []float32{0.1}}, index, 10, 0.6, discardLogger())

	l.Retrieve(context.Background(), Request{Query: "raft", MaxResults: 3})

	if index.topK != 3 {
		t.Fatalf("expected topK 3, got %d", index.topK)
	}
}

func TestVectorLayerEmbedErrorIsEmpty(t *testing.T) {
	index := &fakeIndex{}
	l := NewVectorLayer(&fakeEmbedder{err: errors.New("ollama down")}, index, 10, 0.6, discardLogger())

	got := l.Retrieve(context.Background(), Request{Query: "raft"})

	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
	if index.calls != 0 {
		t.Fatal("search must not run when embedding fails")
	}
}

func TestVectorLayerSearchErrorIsEmpty(t *testing.T) {
	index := &fakeIndex{err: errors.New("qdrant down")}
	l := NewVectorLayer(&fakeEmbedder{vector: []float32{0.1}}, index, 10, 0.6, discardLogger())

	got := l.Retrieve(context.Background(), Request{Query: "raft"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestVectorLayerRecoversFromPanic(t *testing.T) {
	index := &fakeIndex{panics: true}
	l := NewVectorLayer(&fakeEmbedder{vector: []float32{0.1}}, index, 10, 0.6, discardLogger())

	got := l.Retrieve(context.Background(), Request{Query: "raft"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice after panic, got %v", got)
	}
}
