package debate

import (
	"context"
	"regexp"
	"strings"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// Specialist selection bounds. The oracle is asked for 2-6 specialties; a
// response outside those bounds is clamped or replaced by the fallback.
const (
	minSpecialists = 2
	maxSpecialists = 6
)

// fallbackSpecialists is used whenever the oracle's selection cannot be
// parsed into a valid list, so the pipeline never aborts at selection.
var fallbackSpecialists = []models.SpecialistRole{"internal medicine", "neurology"}

// listPattern matches the first bracketed list in the response.
var listPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// SelectSpecialists asks the oracle which specialties fit the patient and
// returns 2-6 distinct roles in the oracle's stated order. The order
// determines group composition and is deterministic for a fixed response.
// A failed call or unparseable response degrades to the fixed fallback pair.
func SelectSpecialists(ctx context.Context, o oracle.Oracle, patient *models.PatientContext) []models.SpecialistRole {
	resp, err := o.Invoke(ctx, oracle.Request{
		RoleInstruction: selectorInstruction,
		Prompt:          patient.Summary(),
		Evidence:        patient.Images,
		EnableTools:     true,
	})
	if err != nil {
		return fallbackSpecialists
	}

	roles := parseSpecialistList(resp.Text)
	if len(roles) < minSpecialists {
		return fallbackSpecialists
	}
	if len(roles) > maxSpecialists {
		roles = roles[:maxSpecialists]
	}
	return roles
}

// parseSpecialistList extracts distinct specialist roles from the first
// bracketed list in the response, preserving order of first appearance.
func parseSpecialistList(response string) []models.SpecialistRole {
	m := listPattern.FindStringSubmatch(response)
	if len(m) < 2 {
		return nil
	}

	seen := make(map[string]struct{})
	var roles []models.SpecialistRole
	for _, part := range strings.Split(m[1], ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		roles = append(roles, models.SpecialistRole(name))
	}
	return roles
}
