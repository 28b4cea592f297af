package planner

import (
	"reflect"
	"testing"

	"github.com/strata-rag/strata/internal/models"
)

func TestPlanIsPure(t *testing.T) {
	a := models.QueryAnalysis{Intent: models.IntentComparative, Complexity: models.ComplexityMedium}
	first := Plan(a)
	second := Plan(a)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Plan is not deterministic: %+v vs %+v", first, second)
	}
}

func TestPlanDecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		analysis     models.QueryAnalysis
		wantName     string
		wantLayers   []string
		wantFusion   models.FusionMethod
		wantVerify   bool
		wantExpand   bool
	}{
		{
			name:       "personal",
			analysis:   models.QueryAnalysis{Intent: models.IntentPersonal, Complexity: models.ComplexityMedium},
			wantName:   "memory_focused",
			wantLayers: []string{"memory", "graph"},
			wantFusion: models.FusionMemoryPriority,
			wantVerify: false,
		},
		{
			name:       "temporal",
			analysis:   models.QueryAnalysis{Intent: models.IntentTemporal, Complexity: models.ComplexityMedium},
			wantName:   "current_info",
			wantLayers: []string{"web", "vector"},
			wantFusion: models.FusionRecencyWeighted,
			wantVerify: true,
		},
		{
			name:       "conceptual",
			analysis:   models.QueryAnalysis{Intent: models.IntentConceptual, Complexity: models.ComplexityMedium},
			wantName:   "semantic",
			wantLayers: []string{"memory", "vector"},
			wantFusion: models.FusionSemanticPriority,
			wantVerify: true,
		},
		{
			name:       "comparative",
			analysis:   models.QueryAnalysis{Intent: models.IntentComparative, Complexity: models.ComplexityMedium},
			wantName:   "comparative",
			wantLayers: []string{"memory", "web", "vector", "graph"},
			wantFusion: models.FusionComprehensive,
			wantVerify: true,
		},
		{
			name:       "complex catch-all",
			analysis:   models.QueryAnalysis{Intent: models.IntentFactual, Complexity: models.ComplexityComplex},
			wantName:   "deep_research",
			wantLayers: []string{"memory", "web", "vector", "graph"},
			wantFusion: models.FusionAgenticSynthesis,
			wantVerify: true,
			wantExpand: true,
		},
		{
			name:       "default",
			analysis:   models.QueryAnalysis{Intent: models.IntentFactual, Complexity: models.ComplexitySimple},
			wantName:   "standard",
			wantLayers: []string{"web", "vector"},
			wantFusion: models.FusionWeighted,
			wantVerify: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.analysis)
			if got.Name != tt.wantName {
				t.Fatalf("expected strategy %s, got %s", tt.wantName, got.Name)
			}
			if !reflect.DeepEqual(got.LayerPriority, tt.wantLayers) {
				t.Fatalf("expected layers %v, got %v", tt.wantLayers, got.LayerPriority)
			}
			if got.FusionMethod != tt.wantFusion {
				t.Fatalf("expected fusion %s, got %s", tt.wantFusion, got.FusionMethod)
			}
			if got.EnableVerification != tt.wantVerify {
				t.Fatalf("expected verification %v, got %v", tt.wantVerify, got.EnableVerification)
			}
			if got.NeedsExpansion != tt.wantExpand {
				t.Fatalf("expected needsExpansion %v, got %v", tt.wantExpand, got.NeedsExpansion)
			}
		})
	}
}

func TestComparativeIntentWinsOverComplexity(t *testing.T) {
	got := Plan(models.QueryAnalysis{Intent: models.IntentComparative, Complexity: models.ComplexityComplex})
	if got.Name != "comparative" {
		t.Fatalf("intent rules must come before the complexity catch-all, got %s", got.Name)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestApplyOverrides(t *testing.T) {
	base := Plan(models.QueryAnalysis{Intent: models.IntentFactual, Complexity: models.ComplexitySimple})

	t.Run("nil options are a no-op", func(t *testing.T) {
		got := ApplyOverrides(base, nil)
		if !reflect.DeepEqual(got, base) {
			t.Fatalf("expected unchanged strategy, got %+v", got)
		}
	})

	t.Run("enable and disable layers", func(t *testing.T) {
		got := ApplyOverrides(base, &models.LayerOptions{
			Memory: boolPtr(true),
			Web:    boolPtr(false),
		})
		if !got.UseMemory || got.UseWeb {
			t.Fatalf("overrides not applied: %+v", got)
		}
		want := []string{"memory", "vector"}
		if !reflect.DeepEqual(got.LayerPriority, want) {
			t.Fatalf("expected priority %v, got %v", want, got.LayerPriority)
		}
	})

	t.Run("fusion and verification untouched", func(t *testing.T) {
		got := ApplyOverrides(base, &models.LayerOptions{Graph: boolPtr(true)})
		if got.FusionMethod != base.FusionMethod {
			t.Fatal("overrides must not change the fusion method")
		}
		if got.EnableVerification != base.EnableVerification {
			t.Fatal("overrides must not change verification")
		}
	})
}
