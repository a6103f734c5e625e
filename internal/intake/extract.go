package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

const extractionInstruction = `Analyze the following medical inquiry transcript and extract
the patient information as JSON.

Respond with exactly this structure:
{
    "age": number or null,
    "sex": "male" or "female" or null,
    "chronic_conditions": [list of conditions],
    "medications": [list of medications],
    "family_history": [list of family history items],
    "symptoms": [list of symptoms]
}

Do not include any text before or after the JSON object.`

// patientJSON mirrors the extraction schema. Pointer fields distinguish
// null from zero values.
type patientJSON struct {
	Age               *int     `json:"age"`
	Sex               *string  `json:"sex"`
	ChronicConditions []string `json:"chronic_conditions"`
	Medications       []string `json:"medications"`
	FamilyHistory     []string `json:"family_history"`
	Symptoms          []string `json:"symptoms"`
}

// ExtractPatientInfo asks the oracle to convert an inquiry transcript into
// structured patient fields. The JSON is located tolerantly (markdown fences
// stripped, first balanced object taken); an unusable response is an error
// the caller degrades from, never fatal to the session.
func ExtractPatientInfo(ctx context.Context, o oracle.Oracle, transcript string) (*models.PatientContext, error) {
	resp, err := o.Invoke(ctx, oracle.Request{
		RoleInstruction: extractionInstruction,
		Prompt:          transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}

	raw, err := extractJSON(resp.Text)
	if err != nil {
		return nil, err
	}

	var pj patientJSON
	if err := json.Unmarshal([]byte(raw), &pj); err != nil {
		return nil, fmt.Errorf("unmarshal patient info: %w", err)
	}

	patient := &models.PatientContext{
		ChronicConditions: pj.ChronicConditions,
		Medications:       pj.Medications,
		FamilyHistory:     pj.FamilyHistory,
		Symptoms:          pj.Symptoms,
	}
	if pj.Age != nil {
		patient.Age = *pj.Age
	}
	if pj.Sex != nil {
		patient.Sex = *pj.Sex
	}
	return patient, nil
}

// extractJSON locates the JSON object in a response that may wrap it in
// markdown code fences or surrounding prose.
func extractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
		response = strings.TrimSpace(response)
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
		response = strings.TrimSpace(response)
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return response[start : end+1], nil
}
