// Package debate implements the referee-mediated deliberation engine:
// specialist selection, circular overlap groups, the five-stage debate
// cycle, stagnation detection with intervention, and final resolution.
package debate

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// DefaultMaxRounds is the hard round budget. The loop terminates by this
// round regardless of consensus.
const DefaultMaxRounds = 100

// DefaultWorkers caps concurrent oracle calls within a stage, to respect
// external rate limits.
const DefaultWorkers = 3

// DefaultCallTimeout bounds a single oracle call.
const DefaultCallTimeout = 90 * time.Second

// ErrAborted is returned by Run when the session is cancelled between
// rounds, either through the context or a stop signal.
var ErrAborted = errors.New("deliberation aborted")

// Config holds the session parameters. Invalid parameters are rejected at
// construction, before any oracle call is made.
type Config struct {
	// MaxRounds is the hard ceiling on debate rounds.
	MaxRounds int
	// StagnationThreshold is the number of consecutive unchanged rounds
	// before the referee intervenes.
	StagnationThreshold int
	// Workers caps concurrent oracle calls within a stage.
	Workers int
	// CallTimeout bounds a single oracle call.
	CallTimeout time.Duration
}

// DefaultConfig returns the standard session parameters.
func DefaultConfig() Config {
	return Config{
		MaxRounds:           DefaultMaxRounds,
		StagnationThreshold: DefaultStagnationThreshold,
		Workers:             DefaultWorkers,
		CallTimeout:         DefaultCallTimeout,
	}
}

// validate reports a configuration error, fatal at session construction.
func (c Config) validate() error {
	if c.MaxRounds < 1 {
		return fmt.Errorf("max rounds must be at least 1, got %d", c.MaxRounds)
	}
	if c.StagnationThreshold < 1 {
		return fmt.Errorf("stagnation threshold must be at least 1, got %d", c.StagnationThreshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout)
	}
	return nil
}

// State is the mutable deliberation state, owned exclusively by the session
// goroutine. ActiveOpinions is replaced wholesale each round, never edited
// in place.
type State struct {
	// CurrentRound is the 1-based round counter. Monotonically
	// non-decreasing, bounded by Config.MaxRounds.
	CurrentRound int
	// ActiveOpinions is the opinion set the debate currently holds.
	ActiveOpinions []models.Opinion
}

// Session drives one deliberation from specialist selection to resolution.
// It owns all mutable state; components receive the state they need as
// arguments and never share it across goroutines.
type Session struct {
	id      string
	cfg     Config
	oracle  oracle.Oracle
	patient *models.PatientContext

	specialists []models.SpecialistRole
	groups      []models.SpecialistGroup
	stagnation  *StagnationDetector

	state  State
	rounds []models.DebateRound

	// stopCheck is consulted between rounds; a true return aborts the
	// session. Nil means no external stop signal.
	stopCheck func() bool

	events  chan Event
	dropped atomic.Uint64
}

// Option customizes a Session.
type Option func(*Session)

// WithStopCheck installs an external stop signal consulted between rounds.
func WithStopCheck(check func() bool) Option {
	return func(s *Session) { s.stopCheck = check }
}

// WithSpecialists pins the specialist selection, bypassing the oracle's
// selector. Used by callers that already know the relevant specialties.
func WithSpecialists(roles []models.SpecialistRole) Option {
	return func(s *Session) { s.specialists = roles }
}

// NewSession validates the configuration and creates a session. The patient
// context is read-only from here on.
func NewSession(o oracle.Oracle, patient *models.PatientContext, cfg Config, opts ...Option) (*Session, error) {
	if o == nil {
		return nil, fmt.Errorf("oracle is required")
	}
	if patient == nil {
		return nil, fmt.Errorf("patient context is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	s := &Session{
		id:         uuid.New().String()[:8],
		cfg:        cfg,
		oracle:     o,
		patient:    patient,
		stagnation: NewStagnationDetector(cfg.StagnationThreshold),
		events:     make(chan Event, 100),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the 8-character session identifier.
func (s *Session) ID() string {
	return s.id
}

// Groups returns the specialist groups formed for this session. Empty until
// Run has performed selection.
func (s *Session) Groups() []models.SpecialistGroup {
	return s.groups
}

// Specialists returns the selected specialist roles. Empty until Run has
// performed selection unless WithSpecialists pinned them.
func (s *Session) Specialists() []models.SpecialistRole {
	return s.specialists
}

// Transcript returns the audit trail recorded so far.
func (s *Session) Transcript() []models.DebateRound {
	return s.rounds
}

// record appends an entry to the session's append-only audit trail.
func (s *Session) record(stage models.DebateStage, voice, content, feedback string, unsupported bool) {
	s.rounds = append(s.rounds, models.DebateRound{
		RoundNumber:     s.state.CurrentRound,
		Stage:           stage,
		Voice:           voice,
		Content:         content,
		RefereeFeedback: feedback,
		Unsupported:     unsupported,
		Timestamp:       time.Now(),
	})
}
