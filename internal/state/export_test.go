package state

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.yaml")

	if err := ExportYAML(path, sampleResult(), []string{"dermatology", "infectious disease"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc exportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("exported file is not valid YAML: %v", err)
	}

	if doc.SessionID != "ab12cd34" || doc.Termination != "consensus" {
		t.Errorf("doc header = %+v", doc)
	}
	if len(doc.Opinions) != 1 || doc.Opinions[0].Diagnosis != "measles" {
		t.Errorf("Opinions = %+v", doc.Opinions)
	}
	if len(doc.Transcript) != 3 {
		t.Errorf("len(Transcript) = %d, want 3", len(doc.Transcript))
	}
	if !doc.Transcript[2].Unsupported {
		t.Error("unsupported flag missing from export")
	}
}
