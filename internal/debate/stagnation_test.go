package debate

import (
	"testing"

	"github.com/smhong/meddebate/pkg/models"
)

func opinionsWith(diagnoses ...string) []models.Opinion {
	ops := make([]models.Opinion, len(diagnoses))
	for i, d := range diagnoses {
		ops[i] = models.Opinion{Voice: "g", Diagnosis: d}
	}
	return ops
}

func TestStagnationDetector_Observe(t *testing.T) {
	d := NewStagnationDetector(3)

	// First observation seeds the history, never stagnation.
	if d.Observe(opinionsWith("flu", "cold")) {
		t.Fatal("first observation reported stagnation")
	}

	// Two repeats stay under the threshold of three.
	if d.Observe(opinionsWith("flu", "cold")) {
		t.Fatal("stagnation reported at count 1")
	}
	if d.Observe(opinionsWith("cold", "flu")) {
		t.Fatal("stagnation reported at count 2; order must not matter")
	}

	// Third repeat hits the threshold.
	if !d.Observe(opinionsWith("flu", "cold")) {
		t.Fatal("stagnation not reported at threshold")
	}
}

func TestStagnationDetector_NewSignatureResets(t *testing.T) {
	d := NewStagnationDetector(2)

	d.Observe(opinionsWith("flu"))
	d.Observe(opinionsWith("flu"))
	if d.Count() != 1 {
		t.Fatalf("Count = %d, want 1", d.Count())
	}

	// A changed opinion set resets the counter and extends the history.
	if d.Observe(opinionsWith("pneumonia")) {
		t.Fatal("stagnation reported on signature change")
	}
	if d.Count() != 0 {
		t.Errorf("Count = %d after change, want 0", d.Count())
	}
	if len(d.History()) != 2 {
		t.Errorf("History length = %d, want 2", len(d.History()))
	}
}

func TestStagnationDetector_EmptyOpinions(t *testing.T) {
	d := NewStagnationDetector(1)
	if d.Observe(nil) {
		t.Fatal("empty opinion set reported stagnation")
	}
	if len(d.History()) != 0 {
		t.Errorf("History length = %d, want 0", len(d.History()))
	}
}

func TestStagnationDetector_Reset(t *testing.T) {
	d := NewStagnationDetector(1)
	d.Observe(opinionsWith("flu"))
	if !d.Observe(opinionsWith("flu")) {
		t.Fatal("expected stagnation at threshold 1")
	}

	d.Reset()
	if d.Count() != 0 {
		t.Errorf("Count = %d after Reset, want 0", d.Count())
	}
	if len(d.History()) != 1 {
		t.Errorf("Reset must keep history, got length %d", len(d.History()))
	}
}

func TestNewStagnationDetector_InvalidThreshold(t *testing.T) {
	d := NewStagnationDetector(0)
	if d.threshold != DefaultStagnationThreshold {
		t.Errorf("threshold = %d, want default %d", d.threshold, DefaultStagnationThreshold)
	}
}
