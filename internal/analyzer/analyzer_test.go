package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/strata-rag/strata/internal/models"
)

type fakeModel struct {
	calls int
	fn    func(prompt string, out any) error
}

func (f *fakeModel) CompleteJSON(_ context.Context, prompt string, out any) error {
	f.calls++
	if f.fn == nil {
		return errors.New("model unavailable")
	}
	return f.fn(prompt, out)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzePersonalFastPath(t *testing.T) {
	model := &fakeModel{}
	a := New(model, discardLogger())

	got := a.Analyze(context.Background(), "what did i say about my preferences", nil)

	if got.Intent != models.IntentPersonal {
		t.Fatalf("expected personal intent, got %s", got.Intent)
	}
	if got.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %f", got.Confidence)
	}
	if !got.RequiresPersonalContext {
		t.Fatal("expected requiresPersonalContext")
	}
	if model.calls != 0 {
		t.Fatalf("fast path must not call the model, got %d calls", model.calls)
	}
}

func TestAnalyzeFactualSimple(t *testing.T) {
	// Model errors out; the rule-based result must come back unmodified.
	model := &fakeModel{}
	a := New(model, discardLogger())

	got := a.Analyze(context.Background(), "What is React?", nil)

	if got.Intent != models.IntentFactual {
		t.Fatalf("expected factual intent, got %s", got.Intent)
	}
	if got.Complexity != models.ComplexitySimple {
		t.Fatalf("expected simple complexity, got %s", got.Complexity)
	}
	if got.QueryType == models.QueryTypeVague {
		t.Fatal("must not classify as vague")
	}
	if got.TemporalContext != nil {
		t.Fatal("must not extract temporal context")
	}
	if model.calls != 1 {
		t.Fatalf("low-confidence result should consult the model once, got %d calls", model.calls)
	}

	found := false
	for _, e := range got.Entities {
		if e == "react" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected react in entities, got %v", got.Entities)
	}
}

func TestAnalyzeComparative(t *testing.T) {
	model := &fakeModel{}
	a := New(model, discardLogger())

	got := a.Analyze(context.Background(), "react vs vue vs angular", nil)

	if got.Intent != models.IntentComparative {
		t.Fatalf("expected comparative intent, got %s", got.Intent)
	}
	if got.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %f", got.Confidence)
	}
	if model.calls != 0 {
		t.Fatal("comparative rule is a fast path")
	}
}

func TestAnalyzeTemporal(t *testing.T) {
	a := New(&fakeModel{}, discardLogger())

	t.Run("relative time", func(t *testing.T) {
		got := a.Analyze(context.Background(), "what happened in the news today", nil)
		if got.Intent != models.IntentTemporal {
			t.Fatalf("expected temporal intent, got %s", got.Intent)
		}
		if !got.RequiresCurrentInfo {
			t.Fatal("expected requiresCurrentInfo")
		}
		if got.TemporalContext == nil || got.TemporalContext.RelativeTime != "today" {
			t.Fatalf("expected relative time today, got %+v", got.TemporalContext)
		}
	})

	t.Run("explicit date", func(t *testing.T) {
		got := a.Analyze(context.Background(), "when did the 2024-05-01 release ship", nil)
		if got.Intent != models.IntentTemporal {
			t.Fatalf("expected temporal intent, got %s", got.Intent)
		}
		if got.TemporalContext == nil || !got.TemporalContext.HasDate || got.TemporalContext.DateText != "2024-05-01" {
			t.Fatalf("expected extracted date, got %+v", got.TemporalContext)
		}
	})

	t.Run("no match inside words", func(t *testing.T) {
		got := a.Analyze(context.Background(), "tell me about nowhere in scotland", nil)
		if got.Intent == models.IntentTemporal {
			t.Fatal("must not match temporal words inside other words")
		}
	})
}

func TestAnalyzeVague(t *testing.T) {
	t.Run("vague terms", func(t *testing.T) {
		a := New(&fakeModel{}, discardLogger())
		got := a.Analyze(context.Background(), "how does that framework thing work", nil)
		if got.QueryType != models.QueryTypeVague {
			t.Fatalf("expected vague query type, got %s", got.QueryType)
		}
		if got.Confidence != 0.6 {
			t.Fatalf("expected confidence 0.6, got %f", got.Confidence)
		}
	})

	t.Run("very short query", func(t *testing.T) {
		a := New(&fakeModel{}, discardLogger())
		got := a.Analyze(context.Background(), "go?", nil)
		if got.QueryType != models.QueryTypeVague {
			t.Fatalf("expected vague query type, got %s", got.QueryType)
		}
	})
}

func TestAnalyzeModelMerge(t *testing.T) {
	model := &fakeModel{
		fn: func(_ string, out any) error {
			mc := out.(*modelClassification)
			mc.Intent = "conceptual"
			mc.Complexity = "complex"
			mc.RequiresVerification = true
			return nil
		},
	}
	a := New(model, discardLogger())

	got := a.Analyze(context.Background(), "explain stuff about that", nil)

	if got.Intent != models.IntentConceptual {
		t.Fatalf("expected merged conceptual intent, got %s", got.Intent)
	}
	if got.Complexity != models.ComplexityComplex {
		t.Fatalf("expected merged complex, got %s", got.Complexity)
	}
	if got.QueryType != models.QueryTypeVague {
		t.Fatal("vague query type must survive the merge")
	}
	if !got.RequiresVerification {
		t.Fatal("expected merged requiresVerification")
	}
}

func TestAnalyzeModelInvalidEnums(t *testing.T) {
	model := &fakeModel{
		fn: func(_ string, out any) error {
			mc := out.(*modelClassification)
			mc.Intent = "galactic"
			mc.Complexity = "extreme"
			return nil
		},
	}
	a := New(model, discardLogger())

	got := a.Analyze(context.Background(), "tell me about distributed consensus", nil)

	if !got.Intent.IsValid() {
		t.Fatalf("invalid model intent leaked through: %s", got.Intent)
	}
	if !got.Complexity.IsValid() {
		t.Fatalf("invalid model complexity leaked through: %s", got.Complexity)
	}
}

func TestEstimateComplexity(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.Complexity
	}{
		{"short single question", "what is go", models.ComplexitySimple},
		{"no question word", "golang garbage collector internals details", models.ComplexityMedium},
		{"many question words", "what is it and why does it work and how do i use it", models.ComplexityComplex},
		{"long query", "please give me a very detailed walkthrough of the raft consensus algorithm including leader election and log replication", models.ComplexityComplex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateComplexity(tokenize(tt.query))
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDefaultAnalysis(t *testing.T) {
	got := DefaultAnalysis()
	if got.Intent != models.IntentFactual || got.Complexity != models.ComplexityMedium {
		t.Fatalf("unexpected default analysis: %+v", got)
	}
	if !got.RequiresCurrentInfo || !got.RequiresVerification {
		t.Fatal("default analysis must request current info and verification")
	}
	if got.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %f", got.Confidence)
	}
}
