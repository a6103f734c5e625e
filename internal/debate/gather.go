package debate

import (
	"context"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// gatherOpinions runs Stage 1: one oracle call per specialist group, fanned
// out with bounded concurrency and collected back in group declaration
// order. The stage is a barrier; it returns only when every group has
// answered or degraded.
//
// A failed call degrades to the parser's fallback opinion for that group
// rather than aborting the round. raws holds the verbatim responses for the
// audit trail; degraded names the voices that fell back.
func (s *Session) gatherOpinions(ctx context.Context) (opinions []models.Opinion, raws []string, degraded []string) {
	instruction := debateInstruction(s.patient, s.state.CurrentRound)

	results := fanOut(ctx, len(s.groups), s.cfg.Workers, s.cfg.CallTimeout, func(callCtx context.Context, i int) (string, error) {
		resp, err := s.oracle.Invoke(callCtx, oracle.Request{
			RoleInstruction: instruction,
			Prompt:          opinionPrompt(i, s.groups[i]),
			Evidence:        s.patient.Images,
			EnableTools:     true,
		})
		if err != nil {
			return "", err
		}
		s.emitSearches(models.StageOpinion, s.groups[i].ID(), resp.ToolCalls)
		return resp.Text, nil
	})

	opinions = make([]models.Opinion, len(s.groups))
	raws = make([]string, len(s.groups))
	for i, res := range results {
		voice := s.groups[i].ID()
		if res.err != nil {
			opinions[i] = models.Opinion{
				Voice:      voice,
				Diagnosis:  models.DefaultDiagnosis,
				Confidence: models.DefaultConfidence,
				Reasoning:  "opinion unavailable: " + res.err.Error(),
			}
			raws[i] = opinions[i].Reasoning
			degraded = append(degraded, voice)
			continue
		}
		opinions[i] = ParseOpinion(voice, res.text)
		raws[i] = res.text
	}
	return opinions, raws, degraded
}
