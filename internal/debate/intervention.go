package debate

import (
	"context"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// InterventionAction is the referee's decision when stagnation is detected.
type InterventionAction int

const (
	// InterventionNone leaves the session untouched: a single stagnant label
	// means consensus is already implicit and the round loop's own verdict
	// check is what ends the session.
	InterventionNone InterventionAction = iota
	// InterventionTerminate forces immediate termination: two irreducible
	// alternatives are a valid terminal state, not a failure.
	InterventionTerminate
	// InterventionInject adds an independent third-perspective opinion and
	// resets the stagnation counter, giving the debate one more chance.
	InterventionInject
)

// String returns a human-readable representation of the action.
func (a InterventionAction) String() string {
	switch a {
	case InterventionNone:
		return "none"
	case InterventionTerminate:
		return "terminate"
	case InterventionInject:
		return "inject"
	default:
		return "unknown"
	}
}

// injectedVoice names the third-perspective opinion's originating voice.
const injectedVoice = "independent consultant"

// injectedConfidence is the confidence assigned to an injected opinion when
// the consultant's response does not state one.
const injectedConfidence = 0.7

// DecideIntervention maps the number of distinct active diagnoses to the
// referee's intervention. It is a pure function of that count:
//
//	1 distinct label  -> none (consensus already implicit)
//	2 distinct labels -> terminate (parallel output of both)
//	3+ distinct labels -> inject a third perspective
func DecideIntervention(distinct int) InterventionAction {
	switch {
	case distinct == 2:
		return InterventionTerminate
	case distinct >= 3:
		return InterventionInject
	default:
		return InterventionNone
	}
}

// injectThirdPerspective asks an independent consultant for an overlooked
// possibility given the stagnant opinion set and returns it as a new
// opinion. A failed call returns false and leaves the session unchanged;
// stagnation will trigger again next round.
func (s *Session) injectThirdPerspective(ctx context.Context) (models.Opinion, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	resp, err := s.oracle.Invoke(callCtx, oracle.Request{
		RoleInstruction: thirdPerspectiveInstruction,
		Prompt:          thirdPerspectivePrompt(s.state.ActiveOpinions),
		EnableTools:     true,
	})
	if err != nil {
		return models.Opinion{}, false
	}
	s.emitSearches(models.StageOpinion, injectedVoice, resp.ToolCalls)

	op := ParseOpinion(injectedVoice, resp.Text)
	if op.Diagnosis == models.DefaultDiagnosis {
		op.Diagnosis = "third perspective"
	}
	if op.Confidence == models.DefaultConfidence {
		op.Confidence = injectedConfidence
	}
	return op, true
}
