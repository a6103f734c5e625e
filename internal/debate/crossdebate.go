package debate

import (
	"context"
	"fmt"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// crossDebate runs Stages 3-4: every opinion is presented against the others
// and asked for a rebuttal informed by the referee's check feedback. Calls
// fan out with bounded concurrency; the returned texts match opinion
// declaration order and are consumed only by the Stage 5 verdict.
//
// A failed call degrades to a neutral placeholder so the verdict still sees
// one entry per opinion.
func (s *Session) crossDebate(ctx context.Context, opinions []models.Opinion, check CheckResult) (rebuttals []string, degraded []string) {
	instruction := fmt.Sprintf(crossDebateInstructionFmt, check.Feedback)

	results := fanOut(ctx, len(opinions), s.cfg.Workers, s.cfg.CallTimeout, func(callCtx context.Context, i int) (string, error) {
		others := make([]models.Opinion, 0, len(opinions)-1)
		for j, op := range opinions {
			if j != i {
				others = append(others, op)
			}
		}

		resp, err := s.oracle.Invoke(callCtx, oracle.Request{
			RoleInstruction: instruction,
			Prompt:          rebuttalPrompt(opinions[i], others),
			EnableTools:     true,
		})
		if err != nil {
			return "", err
		}
		s.emitSearches(models.StageRebuttal, opinions[i].Voice, resp.ToolCalls)
		return resp.Text, nil
	})

	rebuttals = make([]string, len(opinions))
	for i, res := range results {
		if res.err != nil {
			rebuttals[i] = fmt.Sprintf("%s offers no rebuttal (call failed: %v)", opinions[i].Voice, res.err)
			degraded = append(degraded, opinions[i].Voice)
			continue
		}
		rebuttals[i] = res.text
	}
	return rebuttals, degraded
}
