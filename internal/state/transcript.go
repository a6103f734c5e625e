package state

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/smhong/meddebate/pkg/models"
)

// SessionRecord is a stored summary of a completed deliberation session.
type SessionRecord struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Termination    string    `json:"termination"`
	RoundsRun      int       `json:"rounds_run"`
	Specialists    []string  `json:"specialists"`
	PatientSummary string    `json:"patient_summary"`
}

// SaveResult persists a finished session and its full transcript.
// The session row and all round rows are written in one transaction.
func (db *DB) SaveResult(result *models.Result, specialists []string, patientSummary string, startedAt time.Time) error {
	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO sessions (id, started_at, finished_at, termination, rounds_run, specialists, patient_summary)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, result.SessionID, formatTime(startedAt), formatTime(time.Now()),
			string(result.Reason), result.Rounds, strings.Join(specialists, ","), patientSummary)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		for _, r := range result.Transcript {
			unsupported := 0
			if r.Unsupported {
				unsupported = 1
			}
			_, err := tx.Exec(`
				INSERT INTO debate_rounds (session_id, round_number, stage, voice, content, referee_feedback, unsupported, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, result.SessionID, r.RoundNumber, string(r.Stage), r.Voice,
				r.Content, r.RefereeFeedback, unsupported, formatTime(r.Timestamp))
			if err != nil {
				return fmt.Errorf("insert round entry: %w", err)
			}
		}

		return nil
	})
}

// GetSessionRecord retrieves a stored session summary by ID.
// Returns nil when no session with the given ID exists.
func (db *DB) GetSessionRecord(id string) (*SessionRecord, error) {
	row := db.QueryRow(`
		SELECT id, started_at, finished_at, termination, rounds_run, specialists, patient_summary
		FROM sessions WHERE id = ?
	`, id)

	rec, err := scanSessionRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return rec, nil
}

// ListSessions lists stored sessions, most recent first.
func (db *DB) ListSessions() ([]SessionRecord, error) {
	rows, err := db.Query(`
		SELECT id, started_at, finished_at, termination, rounds_run, specialists, patient_summary
		FROM sessions ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSessionRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		records = append(records, *rec)
	}
	return records, nil
}

func scanSessionRecord(scan func(dest ...any) error) (*SessionRecord, error) {
	var rec SessionRecord
	var startedAt, finishedAt, specialists string
	if err := scan(&rec.ID, &startedAt, &finishedAt, &rec.Termination,
		&rec.RoundsRun, &specialists, &rec.PatientSummary); err != nil {
		return nil, err
	}
	rec.StartedAt, _ = parseTime(startedAt)
	rec.FinishedAt, _ = parseTime(finishedAt)
	if specialists != "" {
		rec.Specialists = strings.Split(specialists, ",")
	}
	return &rec, nil
}

// LoadTranscript retrieves the full ordered transcript for a session.
func (db *DB) LoadTranscript(sessionID string) ([]models.DebateRound, error) {
	rows, err := db.Query(`
		SELECT round_number, stage, voice, content, referee_feedback, unsupported, created_at
		FROM debate_rounds WHERE session_id = ? ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	defer rows.Close()

	var transcript []models.DebateRound
	for rows.Next() {
		var r models.DebateRound
		var stage, createdAt string
		var unsupported int
		if err := rows.Scan(&r.RoundNumber, &stage, &r.Voice, &r.Content,
			&r.RefereeFeedback, &unsupported, &createdAt); err != nil {
			return nil, fmt.Errorf("scan round entry: %w", err)
		}
		r.Stage = models.DebateStage(stage)
		r.Unsupported = unsupported != 0
		r.Timestamp, _ = parseTime(createdAt)
		transcript = append(transcript, r)
	}
	return transcript, nil
}
