package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/smhong/meddebate/internal/oracle"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "bare object",
			response: `{"age": 30}`,
			want:     `{"age": 30}`,
		},
		{
			name:     "json code fence",
			response: "```json\n{\"age\": 30}\n```",
			want:     `{"age": 30}`,
		},
		{
			name:     "plain code fence",
			response: "```\n{\"age\": 30}\n```",
			want:     `{"age": 30}`,
		},
		{
			name:     "surrounding prose",
			response: "Here is the extraction: {\"age\": 30} as requested.",
			want:     `{"age": 30}`,
		},
		{
			name:     "no object",
			response: "I could not extract anything.",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.response)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %t", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPatientInfo(t *testing.T) {
	t.Run("full extraction", func(t *testing.T) {
		o := scriptedOracle(func(req oracle.Request) (string, error) {
			return `{
				"age": 52,
				"sex": "female",
				"chronic_conditions": ["hypertension"],
				"medications": ["lisinopril"],
				"family_history": [],
				"symptoms": ["chest pain", "dyspnea"]
			}`, nil
		})

		patient, err := ExtractPatientInfo(context.Background(), o, "transcript")
		if err != nil {
			t.Fatal(err)
		}
		if patient.Age != 52 || patient.Sex != "female" {
			t.Errorf("Age=%d Sex=%q", patient.Age, patient.Sex)
		}
		if len(patient.Symptoms) != 2 || patient.Symptoms[0] != "chest pain" {
			t.Errorf("Symptoms = %v", patient.Symptoms)
		}
		if len(patient.ChronicConditions) != 1 || len(patient.Medications) != 1 {
			t.Errorf("conditions=%v medications=%v", patient.ChronicConditions, patient.Medications)
		}
	})

	t.Run("null age and sex", func(t *testing.T) {
		o := scriptedOracle(func(req oracle.Request) (string, error) {
			return `{"age": null, "sex": null, "chronic_conditions": [], "medications": [], "family_history": [], "symptoms": ["fatigue"]}`, nil
		})

		patient, err := ExtractPatientInfo(context.Background(), o, "transcript")
		if err != nil {
			t.Fatal(err)
		}
		if patient.Age != 0 || patient.Sex != "" {
			t.Errorf("Age=%d Sex=%q, want zero values", patient.Age, patient.Sex)
		}
	})

	t.Run("failed call", func(t *testing.T) {
		o := scriptedOracle(func(req oracle.Request) (string, error) {
			return "", errors.New("api down")
		})
		if _, err := ExtractPatientInfo(context.Background(), o, "transcript"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		o := scriptedOracle(func(req oracle.Request) (string, error) {
			return `{"age": }`, nil
		})
		if _, err := ExtractPatientInfo(context.Background(), o, "transcript"); err == nil {
			t.Error("expected error")
		}
	})
}
