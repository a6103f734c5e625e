package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smhong/meddebate/internal/config"
	stopsignal "github.com/smhong/meddebate/internal/signal"
	"github.com/smhong/meddebate/internal/state"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [session-id]",
	Short: "List stored sessions or show a transcript",
	Long: `List past deliberation sessions from the transcript database.

With a session ID, prints the full round-by-round transcript for that
session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessions,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Signal the running session to stop",
	Long: `Create a stop signal for a session running in this directory.

The session checks for the signal between rounds and aborts cleanly at
the next round boundary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := stopsignal.SendStop(".meddebate"); err != nil {
			return fmt.Errorf("send stop signal: %w", err)
		}
		fmt.Println("Stop signal sent. The session will abort at the next round boundary.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Output.TranscriptDB == "" {
		return fmt.Errorf("transcript persistence is disabled (output.transcript_db is empty)")
	}

	db, err := state.Open(cfg.Output.TranscriptDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	if len(args) == 0 {
		return listSessions(db)
	}
	return showSession(db, args[0])
}

func listSessions(db *state.DB) error {
	records, err := db.ListSessions()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s  %-11s  %d round(s)\n",
			color.CyanString(rec.ID),
			rec.StartedAt.Local().Format("2006-01-02 15:04"),
			rec.Termination,
			rec.RoundsRun)
	}
	return nil
}

func showSession(db *state.DB, id string) error {
	rec, err := db.GetSessionRecord(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no session with ID %s", id)
	}

	transcript, err := db.LoadTranscript(id)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s (%s, %d round(s))\n\n", rec.ID, rec.Termination, rec.RoundsRun)
	for _, entry := range transcript {
		header := fmt.Sprintf("[round %d] [%s] %s", entry.RoundNumber, entry.Stage, entry.Voice)
		if entry.Unsupported {
			header += " " + color.YellowString("(flagged unsupported)")
		}
		fmt.Println(color.CyanString(header))
		fmt.Println(entry.Content)
		if entry.RefereeFeedback != "" {
			fmt.Printf("%s %s\n", color.HiBlackString("referee:"), entry.RefereeFeedback)
		}
		fmt.Println()
	}

	return nil
}
