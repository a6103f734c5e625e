package models

import "testing"

func TestSpecialistGroup_ID(t *testing.T) {
	g := SpecialistGroup{First: "cardiology", Second: "neurology"}
	if g.ID() != "cardiology+neurology" {
		t.Errorf("ID = %q", g.ID())
	}

	self := SpecialistGroup{First: "neurology", Second: "neurology"}
	if self.ID() != "neurology+neurology" {
		t.Errorf("self-pair ID = %q", self.ID())
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"empty set", nil, ""},
		{"single label", []string{"flu"}, "flu"},
		{"labels are sorted", []string{"flu", "cold"}, "cold|flu"},
		{"duplicates are kept", []string{"flu", "flu", "cold"}, "cold|flu|flu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := make([]Opinion, len(tt.labels))
			for i, l := range tt.labels {
				ops[i] = Opinion{Diagnosis: l}
			}
			if got := Signature(ops); got != tt.want {
				t.Errorf("Signature = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignature_OrderIndependent(t *testing.T) {
	a := []Opinion{{Diagnosis: "flu"}, {Diagnosis: "cold"}}
	b := []Opinion{{Diagnosis: "cold"}, {Diagnosis: "flu"}}
	if Signature(a) != Signature(b) {
		t.Error("signatures differ for reordered opinion sets")
	}
}

func TestDistinctDiagnoses(t *testing.T) {
	ops := []Opinion{
		{Diagnosis: "flu"},
		{Diagnosis: "flu"},
		{Diagnosis: "cold"},
	}
	if got := DistinctDiagnoses(ops); got != 2 {
		t.Errorf("DistinctDiagnoses = %d, want 2", got)
	}
	if got := DistinctDiagnoses(nil); got != 0 {
		t.Errorf("DistinctDiagnoses(nil) = %d, want 0", got)
	}
}
