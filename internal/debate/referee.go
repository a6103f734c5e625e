package debate

import (
	"context"
	"regexp"
	"strings"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// ConsensusMarker is the phrase the referee must include in its verdict for
// the session to terminate with consensus. Its absence means the debate
// continues.
const ConsensusMarker = "CONSENSUS REACHED"

// unsupportedPattern matches the referee's "UNSUPPORTED: <voice>" flag lines.
var unsupportedPattern = regexp.MustCompile(`(?im)^\s*UNSUPPORTED:\s*(.+)$`)

// CheckResult is the referee's Stage 2 output: free-text feedback plus the
// set of voices whose claims were flagged as lacking support. The feedback
// is advisory context for cross-debate; the engine never hard-fails on it.
type CheckResult struct {
	// Feedback is the referee's full commentary.
	Feedback string
	// Flagged holds the voices the referee marked as unsupported.
	Flagged map[string]bool
}

// refereeCheck runs Stage 2: the referee validates the current opinions and
// flags unsupported claims. A failed call degrades to empty feedback; the
// debate proceeds without referee guidance for this round.
func (s *Session) refereeCheck(ctx context.Context, opinions []models.Opinion) (CheckResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	resp, err := s.oracle.Invoke(callCtx, oracle.Request{
		RoleInstruction: refereeCheckInstruction,
		Prompt:          checkPrompt(opinions),
		EnableTools:     true,
	})
	if err != nil {
		return CheckResult{Flagged: map[string]bool{}}, err
	}
	s.emitSearches(models.StageRefereeCheck, refereeVoice, resp.ToolCalls)
	return parseCheck(resp.Text), nil
}

// parseCheck extracts the flagged voice set from the referee's feedback.
func parseCheck(feedback string) CheckResult {
	flagged := make(map[string]bool)
	for _, m := range unsupportedPattern.FindAllStringSubmatch(feedback, -1) {
		if voice := strings.TrimSpace(m[1]); voice != "" {
			flagged[voice] = true
		}
	}
	return CheckResult{Feedback: feedback, Flagged: flagged}
}

// refereeVerdict runs Stage 5: the referee weighs the rebuttals and decides
// whether consensus was reached. Consensus is declared exactly when the
// response contains ConsensusMarker. A failed call means no consensus this
// round; the loop carries on toward the round budget.
func (s *Session) refereeVerdict(ctx context.Context, rebuttals []string) (consensus bool, judgment string, err error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	resp, err := s.oracle.Invoke(callCtx, oracle.Request{
		RoleInstruction: refereeVerdictInstruction,
		Prompt:          verdictPrompt(rebuttals),
		EnableTools:     true,
	})
	if err != nil {
		return false, "", err
	}
	s.emitSearches(models.StageFinalJudgment, refereeVoice, resp.ToolCalls)
	return strings.Contains(resp.Text, ConsensusMarker), resp.Text, nil
}
