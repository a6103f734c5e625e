package debate

import (
	"time"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// EventType represents the type of session event.
type EventType string

const (
	// EventSessionStarted fires once after group formation.
	EventSessionStarted EventType = "session_started"
	// EventRoundStarted fires at the top of each round.
	EventRoundStarted EventType = "round_started"
	// EventStageCompleted fires after each debate stage finishes.
	EventStageCompleted EventType = "stage_completed"
	// EventSearch fires for each web lookup a voice made while answering.
	EventSearch EventType = "search"
	// EventDegraded fires when an oracle call fell back to a default value.
	EventDegraded EventType = "degraded"
	// EventIntervention fires when the referee intervenes on stagnation.
	EventIntervention EventType = "intervention"
	// EventSessionDone fires once when a terminal state is reached.
	EventSessionDone EventType = "session_done"
)

// Event is emitted by the session for progress display. The engine never
// prints; consumers render events however they like.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// Round is the round the event belongs to, 0 for session-level events.
	Round int
	// Stage is the related debate stage, if applicable.
	Stage models.DebateStage
	// Voice is the related group or role, if applicable.
	Voice string
	// Message provides additional context.
	Message string
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Events returns the channel on which the session emits progress events.
// The channel is closed when Run returns.
func (s *Session) Events() <-chan Event {
	return s.events
}

// DroppedEventCount returns the number of events discarded because the
// consumer fell behind.
func (s *Session) DroppedEventCount() uint64 {
	return s.dropped.Load()
}

// emitSearches surfaces a voice's web lookups as search events, one per
// tool invocation. Safe to call from fan-out workers.
func (s *Session) emitSearches(stage models.DebateStage, voice string, calls []oracle.ToolCall) {
	for _, tc := range calls {
		msg := tc.Query()
		if msg == "" {
			msg = tc.Name
		}
		s.emit(Event{Type: EventSearch, Round: s.state.CurrentRound, Stage: stage, Voice: voice, Message: msg})
	}
}

// emit sends an event without ever blocking the round loop; a full buffer
// drops the event and counts it.
func (s *Session) emit(e Event) {
	e.Timestamp = time.Now()
	select {
	case s.events <- e:
	default:
		s.dropped.Add(1)
	}
}
