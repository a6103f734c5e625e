package models

import "time"

// DebateStage identifies one of the five stages of a debate cycle.
type DebateStage string

const (
	// StageOpinion is the initial diagnosis stage.
	StageOpinion DebateStage = "opinion"
	// StageRefereeCheck is the referee's evidence and hallucination check.
	StageRefereeCheck DebateStage = "referee_check"
	// StageCrossCounter is the mutual cross-examination stage.
	StageCrossCounter DebateStage = "cross_counter"
	// StageRebuttal is the rebuttal/defense stage.
	StageRebuttal DebateStage = "rebuttal"
	// StageFinalJudgment is the referee's consensus verdict stage.
	StageFinalJudgment DebateStage = "final_judgment"
)

// Valid returns true if the stage is a known value.
func (s DebateStage) Valid() bool {
	switch s {
	case StageOpinion, StageRefereeCheck, StageCrossCounter, StageRebuttal, StageFinalJudgment:
		return true
	default:
		return false
	}
}

// DebateRound is one append-only entry in the session's audit trail. Entries
// are never mutated after creation; the ordered sequence is the full record
// of what every voice said and when.
type DebateRound struct {
	// RoundNumber is the 1-based round this entry belongs to.
	RoundNumber int `json:"round_number"`
	// Stage is the debate stage that produced this entry.
	Stage DebateStage `json:"stage"`
	// Voice identifies the group, referee, or injected role that spoke.
	Voice string `json:"voice"`
	// Content is the raw text of what was said.
	Content string `json:"content"`
	// RefereeFeedback holds referee commentary attached to this entry, if any.
	RefereeFeedback string `json:"referee_feedback,omitempty"`
	// Unsupported is true when the referee flagged the content as containing
	// claims without supporting evidence.
	Unsupported bool `json:"unsupported,omitempty"`
	// Timestamp is when the entry was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// TerminationReason explains how a deliberation session ended.
type TerminationReason string

const (
	// TerminatedByConsensus means the referee declared consensus.
	TerminatedByConsensus TerminationReason = "consensus"
	// TerminatedByStagnation means the referee forced termination after the
	// debate stopped making progress with two irreducible alternatives.
	TerminatedByStagnation TerminationReason = "stagnation"
	// TerminatedByMaxRounds means the round budget was exhausted.
	TerminatedByMaxRounds TerminationReason = "max_rounds"
)

// Valid returns true if the reason is a known value.
func (r TerminationReason) Valid() bool {
	switch r {
	case TerminatedByConsensus, TerminatedByStagnation, TerminatedByMaxRounds:
		return true
	default:
		return false
	}
}

// Result is the final outcome of a deliberation session. Opinions holds one
// entry on consensus, or the full surviving set in declaration order when the
// session ends without a single agreed diagnosis. Parallel opinions are
// unranked; the system does not force a false consensus.
type Result struct {
	// SessionID is the 8-character session identifier.
	SessionID string `json:"session_id"`
	// Reason explains why the session terminated.
	Reason TerminationReason `json:"reason"`
	// Rounds is the number of rounds that executed.
	Rounds int `json:"rounds"`
	// Opinions is the surviving opinion set.
	Opinions []Opinion `json:"opinions"`
	// Transcript is the ordered audit trail of every debate entry.
	Transcript []DebateRound `json:"transcript,omitempty"`
}

// Consensus reports whether the session ended with a single agreed opinion.
func (r *Result) Consensus() bool {
	return r.Reason == TerminatedByConsensus && len(r.Opinions) == 1
}
