package debate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/smhong/meddebate/pkg/models"
)

// Regular expressions for extracting opinion fields from oracle output.
// Matching is tolerant: any field that cannot be found falls back to a
// documented default rather than failing the round.
var (
	// diagnosisPattern matches "Diagnosis: <label>" on a single line.
	diagnosisPattern = regexp.MustCompile(`(?im)^\s*Diagnosis:\s*(.+)$`)
	// confidencePattern matches "Confidence: 0.85" and tolerates surrounding text.
	confidencePattern = regexp.MustCompile(`(?i)Confidence:\s*([\d.]+)`)
	// reasoningPattern captures everything after "Reasoning:" up to an
	// "Evidence:" block or the end of the response.
	reasoningPattern = regexp.MustCompile(`(?is)Reasoning:\s*(.+?)(?:\n\s*Evidence:|\z)`)
	// evidencePattern captures the "Evidence:" block.
	evidencePattern = regexp.MustCompile(`(?is)Evidence:\s*(.+)\z`)
)

// ParseOpinion extracts a structured Opinion from free-form oracle output.
// It never fails: a missing diagnosis yields models.DefaultDiagnosis, a
// missing or unusable confidence yields models.DefaultConfidence, and a
// missing reasoning block keeps the full response text as the rationale.
func ParseOpinion(voice, response string) models.Opinion {
	op := models.Opinion{
		Voice:      voice,
		Diagnosis:  models.DefaultDiagnosis,
		Confidence: models.DefaultConfidence,
		Reasoning:  strings.TrimSpace(response),
	}

	if m := diagnosisPattern.FindStringSubmatch(response); len(m) >= 2 {
		if label := strings.TrimSpace(m[1]); label != "" {
			op.Diagnosis = strings.Trim(label, `"'[]`)
		}
	}

	if m := confidencePattern.FindStringSubmatch(response); len(m) >= 2 {
		if v, err := strconv.ParseFloat(strings.TrimRight(m[1], "."), 64); err == nil && v >= 0 && v <= 1 {
			op.Confidence = v
		}
	}

	if m := reasoningPattern.FindStringSubmatch(response); len(m) >= 2 {
		if reasoning := strings.TrimSpace(m[1]); reasoning != "" {
			op.Reasoning = reasoning
		}
	}

	if m := evidencePattern.FindStringSubmatch(response); len(m) >= 2 {
		op.Evidence = parseEvidenceItems(m[1])
	}

	return op
}

// parseEvidenceItems splits an evidence block into its bullet items,
// preserving order. Lines without a bullet are ignored.
func parseEvidenceItems(block string) []string {
	var items []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 2 {
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			if item := strings.TrimSpace(line[2:]); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
