package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/smhong/meddebate/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "meddebate.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func sampleResult() *models.Result {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Result{
		SessionID: "ab12cd34",
		Reason:    models.TerminatedByConsensus,
		Rounds:    3,
		Opinions: []models.Opinion{
			{Voice: "derm+infx", Diagnosis: "measles", Confidence: 0.9},
		},
		Transcript: []models.DebateRound{
			{RoundNumber: 1, Stage: models.StageOpinion, Voice: "derm+infx", Content: "Diagnosis: measles", Timestamp: now},
			{RoundNumber: 1, Stage: models.StageRefereeCheck, Voice: "referee", Content: "supported", Timestamp: now},
			{RoundNumber: 1, Stage: models.StageOpinion, Voice: "infx+peds", Content: "weak claim", RefereeFeedback: "flagged as unsupported by referee", Unsupported: true, Timestamp: now},
		},
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	db := openTestDB(t)

	started := time.Now().Add(-time.Minute)
	specialists := []string{"dermatology", "infectious disease"}
	if err := db.SaveResult(sampleResult(), specialists, "Age: 5", started); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	rec, err := db.GetSessionRecord("ab12cd34")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("session record not found")
	}
	if rec.Termination != "consensus" || rec.RoundsRun != 3 {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Specialists) != 2 || rec.Specialists[0] != "dermatology" {
		t.Errorf("Specialists = %v", rec.Specialists)
	}

	transcript, err := db.LoadTranscript("ab12cd34")
	if err != nil {
		t.Fatal(err)
	}
	if len(transcript) != 3 {
		t.Fatalf("len(transcript) = %d, want 3", len(transcript))
	}
	if transcript[0].Stage != models.StageOpinion || transcript[0].Content != "Diagnosis: measles" {
		t.Errorf("first entry = %+v", transcript[0])
	}
	if !transcript[2].Unsupported {
		t.Error("unsupported flag lost on round trip")
	}
	if transcript[2].RefereeFeedback != "flagged as unsupported by referee" {
		t.Errorf("feedback = %q", transcript[2].RefereeFeedback)
	}
}

func TestGetSessionRecord_Missing(t *testing.T) {
	db := openTestDB(t)

	rec, err := db.GetSessionRecord("nope")
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Errorf("rec = %+v, want nil for missing session", rec)
	}
}

func TestListSessions_MostRecentFirst(t *testing.T) {
	db := openTestDB(t)

	older := sampleResult()
	older.SessionID = "older111"
	if err := db.SaveResult(older, nil, "", time.Now().Add(-2*time.Hour)); err != nil {
		t.Fatal(err)
	}

	newer := sampleResult()
	newer.SessionID = "newer222"
	if err := db.SaveResult(newer, nil, "", time.Now().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	records, err := db.ListSessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != "newer222" || records[1].ID != "older111" {
		t.Errorf("order = [%s, %s], want newest first", records[0].ID, records[1].ID)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
