package models

import (
	"strings"
	"testing"
)

func TestDebateStage_Valid(t *testing.T) {
	valid := []DebateStage{StageOpinion, StageRefereeCheck, StageCrossCounter, StageRebuttal, StageFinalJudgment}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("stage %q reported invalid", s)
		}
	}
	if DebateStage("closing_argument").Valid() {
		t.Error("unknown stage reported valid")
	}
}

func TestTerminationReason_Valid(t *testing.T) {
	valid := []TerminationReason{TerminatedByConsensus, TerminatedByStagnation, TerminatedByMaxRounds}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("reason %q reported invalid", r)
		}
	}
	if TerminationReason("gave_up").Valid() {
		t.Error("unknown reason reported valid")
	}
}

func TestResult_Consensus(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{
			name:   "consensus with single opinion",
			result: Result{Reason: TerminatedByConsensus, Opinions: []Opinion{{Diagnosis: "flu"}}},
			want:   true,
		},
		{
			name:   "consensus reason but multiple opinions",
			result: Result{Reason: TerminatedByConsensus, Opinions: []Opinion{{Diagnosis: "flu"}, {Diagnosis: "cold"}}},
			want:   false,
		},
		{
			name:   "stagnation is never consensus",
			result: Result{Reason: TerminatedByStagnation, Opinions: []Opinion{{Diagnosis: "flu"}}},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Consensus(); got != tt.want {
				t.Errorf("Consensus() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestPatientContext_Summary(t *testing.T) {
	p := &PatientContext{
		Age:      34,
		Sex:      "M",
		Symptoms: []string{"fever", "cough"},
		Images:   []ImageEvidence{{Filename: "xray.png"}},
	}
	s := p.Summary()

	for _, want := range []string{"Age: 34", "Sex: M", "fever, cough", "Attached images: 1"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary missing %q:\n%s", want, s)
		}
	}
	if !strings.Contains(s, "none reported") {
		t.Errorf("empty fields should read as none reported:\n%s", s)
	}
}

func TestPatientContext_Summary_Unknowns(t *testing.T) {
	s := (&PatientContext{}).Summary()
	if !strings.Contains(s, "Age: unknown") || !strings.Contains(s, "Sex: unknown") {
		t.Errorf("empty context should report unknowns:\n%s", s)
	}
	if strings.Contains(s, "Attached images") {
		t.Error("image line must be omitted without images")
	}
}
