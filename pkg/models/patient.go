package models

import "strconv"

// ImageEvidence is an opaque medical image attached to the patient context,
// e.g. an X-ray or a photo of a skin lesion. The payload is already encoded
// for transport; the deliberation core never inspects it.
type ImageEvidence struct {
	// Data is the base64-encoded image payload.
	Data string `json:"data"`
	// MediaType is the MIME type, e.g. "image/jpeg".
	MediaType string `json:"media_type"`
	// Filename is the original file name, for display only.
	Filename string `json:"filename,omitempty"`
	// Caption is an optional free-text description supplied at upload.
	Caption string `json:"caption,omitempty"`
}

// SearchResult records an external lookup the interviewer performed during
// intake. The core never interprets these.
type SearchResult struct {
	// Query is the search query that was issued.
	Query string `json:"query"`
	// Source names the tool that performed the lookup.
	Source string `json:"source,omitempty"`
}

// PatientContext is the immutable-after-intake snapshot of everything known
// about the patient. It is produced once by the intake dialogue and read-only
// to the deliberation core; absent fields mean unknown.
type PatientContext struct {
	// Age in years, 0 when unknown.
	Age int `json:"age,omitempty"`
	// Sex as reported by the patient.
	Sex string `json:"sex,omitempty"`
	// ChronicConditions lists known long-term conditions.
	ChronicConditions []string `json:"chronic_conditions,omitempty"`
	// Medications lists current medications.
	Medications []string `json:"medications,omitempty"`
	// FamilyHistory lists relevant family history items.
	FamilyHistory []string `json:"family_history,omitempty"`
	// Symptoms lists the reported symptoms.
	Symptoms []string `json:"symptoms,omitempty"`
	// Notes holds the free-text inquiry transcript or any additional notes.
	Notes string `json:"notes,omitempty"`
	// Images holds attached medical images.
	Images []ImageEvidence `json:"images,omitempty"`
	// SearchResults holds prior external lookups made during intake.
	SearchResults []SearchResult `json:"search_results,omitempty"`
}

// Summary renders the structured fields as a compact text block suitable for
// inclusion in oracle prompts.
func (p *PatientContext) Summary() string {
	join := func(items []string) string {
		if len(items) == 0 {
			return "none reported"
		}
		out := items[0]
		for _, s := range items[1:] {
			out += ", " + s
		}
		return out
	}

	age := "unknown"
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}
	sex := p.Sex
	if sex == "" {
		sex = "unknown"
	}

	s := "Age: " + age + "\n" +
		"Sex: " + sex + "\n" +
		"Chronic conditions: " + join(p.ChronicConditions) + "\n" +
		"Medications: " + join(p.Medications) + "\n" +
		"Family history: " + join(p.FamilyHistory) + "\n" +
		"Symptoms: " + join(p.Symptoms)
	if len(p.Images) > 0 {
		s += "\nAttached images: " + strconv.Itoa(len(p.Images))
	}
	return s
}
