package models

import (
	"sort"
	"strings"
)

// SpecialistRole names a medical deliberation perspective, e.g. "cardiology".
// Roles carry no internal structure; the reasoning oracle gives them meaning.
type SpecialistRole string

// SpecialistGroup is an ordered pair of specialists that deliberates as a
// single voice. Groups are formed once per session and never change.
type SpecialistGroup struct {
	// First is the lead specialist of the pair.
	First SpecialistRole `json:"first"`
	// Second is the overlapping neighbor specialist.
	Second SpecialistRole `json:"second"`
}

// ID returns the group's stable identifier, e.g. "cardiology+neurology".
func (g SpecialistGroup) ID() string {
	return string(g.First) + "+" + string(g.Second)
}

// DefaultDiagnosis is the label used when no diagnosis could be extracted
// from an oracle response.
const DefaultDiagnosis = "undetermined"

// DefaultConfidence is the confidence assigned when none could be extracted.
const DefaultConfidence = 0.5

// Opinion is a structured diagnostic claim produced by a specialist group
// (or injected by the referee's intervention). Opinions are replaced, never
// mutated, when a group re-derives its position in a later round.
type Opinion struct {
	// Voice identifies the group or role that produced this opinion.
	Voice string `json:"voice"`
	// Diagnosis is the claimed diagnosis label.
	Diagnosis string `json:"diagnosis"`
	// Confidence is the claimed confidence in [0, 1].
	Confidence float64 `json:"confidence"`
	// Reasoning is the free-text rationale behind the diagnosis.
	Reasoning string `json:"reasoning"`
	// Evidence lists supporting evidence statements, in the order given.
	Evidence []string `json:"evidence,omitempty"`
}

// Signature returns the canonical signature of an opinion set: the
// diagnosis labels sorted and joined with "|". Sorting removes opinion
// ordering as a false signal of change between rounds.
func Signature(opinions []Opinion) string {
	labels := make([]string, len(opinions))
	for i, op := range opinions {
		labels[i] = op.Diagnosis
	}
	sort.Strings(labels)
	return strings.Join(labels, "|")
}

// DistinctDiagnoses returns the number of distinct diagnosis labels present
// in the opinion set.
func DistinctDiagnoses(opinions []Opinion) int {
	seen := make(map[string]struct{}, len(opinions))
	for _, op := range opinions {
		seen[op.Diagnosis] = struct{}{}
	}
	return len(seen)
}
