package state

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/smhong/meddebate/pkg/models"
)

// exportDocument is the YAML shape written by ExportYAML.
type exportDocument struct {
	SessionID   string          `yaml:"session_id"`
	ExportedAt  string          `yaml:"exported_at"`
	Termination string          `yaml:"termination"`
	RoundsRun   int             `yaml:"rounds_run"`
	Specialists []string        `yaml:"specialists,omitempty"`
	Opinions    []exportOpinion `yaml:"opinions"`
	Transcript  []exportRound   `yaml:"transcript"`
}

type exportOpinion struct {
	Voice      string   `yaml:"voice"`
	Diagnosis  string   `yaml:"diagnosis"`
	Confidence float64  `yaml:"confidence"`
	Reasoning  string   `yaml:"reasoning,omitempty"`
	Evidence   []string `yaml:"evidence,omitempty"`
}

type exportRound struct {
	Round           int    `yaml:"round"`
	Stage           string `yaml:"stage"`
	Voice           string `yaml:"voice"`
	Content         string `yaml:"content"`
	RefereeFeedback string `yaml:"referee_feedback,omitempty"`
	Unsupported     bool   `yaml:"unsupported,omitempty"`
	Timestamp       string `yaml:"timestamp"`
}

// ExportYAML writes a session result and its transcript to a YAML file.
func ExportYAML(path string, result *models.Result, specialists []string) error {
	doc := exportDocument{
		SessionID:   result.SessionID,
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		Termination: string(result.Reason),
		RoundsRun:   result.Rounds,
		Specialists: specialists,
	}

	for _, op := range result.Opinions {
		doc.Opinions = append(doc.Opinions, exportOpinion{
			Voice:      op.Voice,
			Diagnosis:  op.Diagnosis,
			Confidence: op.Confidence,
			Reasoning:  op.Reasoning,
			Evidence:   op.Evidence,
		})
	}

	for _, r := range result.Transcript {
		doc.Transcript = append(doc.Transcript, exportRound{
			Round:           r.RoundNumber,
			Stage:           string(r.Stage),
			Voice:           r.Voice,
			Content:         r.Content,
			RefereeFeedback: r.RefereeFeedback,
			Unsupported:     r.Unsupported,
			Timestamp:       r.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write transcript file: %w", err)
	}

	return nil
}
