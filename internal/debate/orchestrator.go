package debate

import (
	"context"
	"fmt"

	"github.com/smhong/meddebate/pkg/models"
)

// refereeVoice names the referee in audit entries and events.
const refereeVoice = "referee"

// Run drives the deliberation to a terminal state and returns the result.
// The loop is round-synchronous: each of the five stages is a barrier, and
// cancellation is honored only between rounds so a round is never left
// half-applied. A session can be run once.
//
// Run always produces a result: oracle failures degrade locally and
// exhausting the round budget is a defined terminal state, not an error.
// The only error returns are cancellation (ErrAborted or the context's
// error) between rounds.
func (s *Session) Run(ctx context.Context) (*models.Result, error) {
	defer close(s.events)

	if len(s.specialists) == 0 {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		s.specialists = SelectSpecialists(callCtx, s.oracle, s.patient)
		cancel()
	}
	s.groups = FormGroups(s.specialists)
	s.emit(Event{Type: EventSessionStarted, Message: fmt.Sprintf("%d specialists, %d groups", len(s.specialists), len(s.groups))})

	var reason models.TerminationReason
	stagnant := false

	for {
		if err := s.checkAbort(ctx); err != nil {
			return nil, err
		}

		s.state.CurrentRound++
		s.emit(Event{Type: EventRoundStarted, Round: s.state.CurrentRound})

		if stagnant {
			forced := s.intervene(ctx)
			stagnant = false
			if forced {
				reason = models.TerminatedByStagnation
				break
			}
		}

		consensus := s.runCycle(ctx)
		if consensus {
			reason = models.TerminatedByConsensus
			break
		}

		stagnant = s.stagnation.Observe(s.state.ActiveOpinions)

		if s.state.CurrentRound >= s.cfg.MaxRounds {
			reason = models.TerminatedByMaxRounds
			break
		}
	}

	result := s.resolve(reason)
	s.emit(Event{Type: EventSessionDone, Round: s.state.CurrentRound, Message: string(reason)})
	return result, nil
}

// checkAbort honors cancellation between rounds only.
func (s *Session) checkAbort(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if s.stopCheck != nil && s.stopCheck() {
		return ErrAborted
	}
	return nil
}

// runCycle executes one complete five-stage debate cycle and reports whether
// the referee declared consensus.
func (s *Session) runCycle(ctx context.Context) bool {
	round := s.state.CurrentRound

	// Stage 1: every group states its opinion. Barrier: the referee needs
	// the full set.
	opinions, raws, degraded := s.gatherOpinions(ctx)
	s.state.ActiveOpinions = opinions
	for _, voice := range degraded {
		s.emit(Event{Type: EventDegraded, Round: round, Stage: models.StageOpinion, Voice: voice, Message: "opinion call failed, using fallback"})
	}

	// Stage 2: referee validates the opinions. Advisory only.
	check, err := s.refereeCheck(ctx, opinions)
	if err != nil {
		s.emit(Event{Type: EventDegraded, Round: round, Stage: models.StageRefereeCheck, Voice: refereeVoice, Message: "check call failed, proceeding without feedback"})
	}

	// Opinion entries are recorded once the referee's flags are known, so
	// each entry carries its final unsupported verdict from creation.
	for i, op := range opinions {
		feedback := ""
		if check.Flagged[op.Voice] {
			feedback = "flagged as unsupported by referee"
		}
		s.record(models.StageOpinion, op.Voice, raws[i], feedback, check.Flagged[op.Voice])
	}
	s.record(models.StageRefereeCheck, refereeVoice, check.Feedback, "", false)
	s.emit(Event{Type: EventStageCompleted, Round: round, Stage: models.StageRefereeCheck, Voice: refereeVoice, Message: fmt.Sprintf("%d opinions flagged", len(check.Flagged))})

	// Stages 3-4: mutual rebuttal, one call per opinion covering counter
	// and defense, informed by the referee's feedback.
	rebuttals, degraded := s.crossDebate(ctx, opinions, check)
	for _, voice := range degraded {
		s.emit(Event{Type: EventDegraded, Round: round, Stage: models.StageRebuttal, Voice: voice, Message: "rebuttal call failed, using placeholder"})
	}
	for i, rebuttal := range rebuttals {
		s.record(models.StageRebuttal, opinions[i].Voice, rebuttal, "", false)
	}
	s.emit(Event{Type: EventStageCompleted, Round: round, Stage: models.StageRebuttal})

	// Stage 5: referee verdict. A failed call means no consensus this round.
	consensus, judgment, err := s.refereeVerdict(ctx, rebuttals)
	if err != nil {
		s.emit(Event{Type: EventDegraded, Round: round, Stage: models.StageFinalJudgment, Voice: refereeVoice, Message: "verdict call failed, no consensus this round"})
		return false
	}
	s.record(models.StageFinalJudgment, refereeVoice, judgment, "", false)
	s.emit(Event{Type: EventStageCompleted, Round: round, Stage: models.StageFinalJudgment, Voice: refereeVoice})

	return consensus
}

// intervene applies the intervention policy after stagnation was detected.
// Returns true when the session must terminate with parallel output.
func (s *Session) intervene(ctx context.Context) (forceTerminate bool) {
	distinct := models.DistinctDiagnoses(s.state.ActiveOpinions)
	action := DecideIntervention(distinct)
	s.emit(Event{Type: EventIntervention, Round: s.state.CurrentRound, Message: fmt.Sprintf("stagnation after %d repeats, %d distinct diagnoses: %s", s.stagnation.Count(), distinct, action)})

	switch action {
	case InterventionTerminate:
		// Two irreducible alternatives are a valid terminal state.
		s.state.CurrentRound = s.cfg.MaxRounds
		return true

	case InterventionInject:
		op, ok := s.injectThirdPerspective(ctx)
		if !ok {
			s.emit(Event{Type: EventDegraded, Round: s.state.CurrentRound, Stage: models.StageOpinion, Voice: injectedVoice, Message: "third perspective call failed"})
			return false
		}
		s.state.ActiveOpinions = append(s.state.ActiveOpinions, op)
		s.record(models.StageOpinion, injectedVoice, op.Reasoning, "", false)
		s.stagnation.Reset()
		return false

	default:
		// One distinct label: consensus is already implicit; the verdict
		// check ends the session, not the policy.
		return false
	}
}

// resolve produces the final result for a terminal state. A consensus
// termination with a single distinct diagnosis collapses to one opinion
// (the highest-confidence holder of that diagnosis); every other outcome
// emits the surviving opinions as an unranked parallel set.
func (s *Session) resolve(reason models.TerminationReason) *models.Result {
	opinions := s.state.ActiveOpinions

	if reason == models.TerminatedByConsensus && models.DistinctDiagnoses(opinions) == 1 && len(opinions) > 1 {
		best := opinions[0]
		for _, op := range opinions[1:] {
			if op.Confidence > best.Confidence {
				best = op
			}
		}
		opinions = []models.Opinion{best}
	}

	return &models.Result{
		SessionID:  s.id,
		Reason:     reason,
		Rounds:     s.state.CurrentRound,
		Opinions:   opinions,
		Transcript: s.rounds,
	}
}
