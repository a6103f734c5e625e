package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smhong/meddebate/internal/config"
	"github.com/smhong/meddebate/internal/debate"
	"github.com/smhong/meddebate/internal/intake"
	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/internal/present"
	stopsignal "github.com/smhong/meddebate/internal/signal"
	"github.com/smhong/meddebate/internal/state"
	"github.com/smhong/meddebate/pkg/models"
)

var (
	diagnoseImages      []string
	diagnoseSpecialists []string
	diagnoseNoSearch    bool
	diagnoseMaxRounds   int
	diagnoseModel       string
	diagnoseTranscript  string
	diagnoseExport      string
	diagnoseVerbose     bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run a diagnostic deliberation session",
	Long: `Run a full diagnostic session: patient intake, specialist
selection, and refereed multi-round debate.

The session begins with an interactive intake dialogue on stdin. Answer
the interviewer's questions; type "done" to end the interview early.
Afterwards the debate runs unattended and the final diagnosis (or the
set of surviving candidate diagnoses) is printed.

Medical images can be attached with --image. The path may carry an
optional caption after a colon:

  meddebate diagnose --image ./rash.jpg
  meddebate diagnose --image "./xray.png:left wrist, lateral view"

A running session stops at the next round boundary when a "stop" file
appears in .meddebate/signals/ (see the stop command) or on Ctrl-C.`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringArrayVar(&diagnoseImages, "image", nil, "Attach a medical image (path[:caption], repeatable)")
	diagnoseCmd.Flags().StringArrayVar(&diagnoseSpecialists, "specialist", nil, "Pin a specialty instead of automatic selection (repeatable)")
	diagnoseCmd.Flags().BoolVar(&diagnoseNoSearch, "no-search", false, "Disable web search during the debate")
	diagnoseCmd.Flags().IntVar(&diagnoseMaxRounds, "max-rounds", 0, "Override the round ceiling")
	diagnoseCmd.Flags().StringVar(&diagnoseModel, "model", "", "Override the Claude model")
	diagnoseCmd.Flags().StringVar(&diagnoseTranscript, "transcript", "", "Override the transcript database path")
	diagnoseCmd.Flags().StringVar(&diagnoseExport, "export", "", "Export the transcript to a YAML file")
	diagnoseCmd.Flags().BoolVar(&diagnoseVerbose, "verbose", false, "Print per-stage progress")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyDiagnoseFlags(cfg)

	client, err := oracle.NewClient(oracle.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.AWS.Bedrock,
		AWSRegion:     cfg.AWS.Region,
		AWSProfile:    cfg.AWS.Profile,
	})
	if err != nil {
		return err
	}
	o := oracle.NewAnthropicOracle(client, cfg.Search.Enabled)

	images, err := loadImages(diagnoseImages)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Step 1: intake dialogue
	interviewer := &intake.Interviewer{
		Oracle: o,
		In:     os.Stdin,
		Out:    os.Stdout,
		Images: images,
	}
	patient, err := interviewer.Run(ctx)
	if err != nil {
		return fmt.Errorf("intake: %w", err)
	}

	// Step 2: refereed debate
	debateCfg := debate.DefaultConfig()
	debateCfg.MaxRounds = cfg.Debate.MaxRounds
	debateCfg.StagnationThreshold = cfg.Debate.StagnationThreshold
	debateCfg.Workers = cfg.Debate.Workers
	debateCfg.CallTimeout = cfg.Debate.CallTimeout

	opts := []debate.Option{}

	watcher, werr := stopsignal.NewWatcher(".meddebate")
	if werr == nil {
		watcher.Clear()
		defer watcher.Close()
		opts = append(opts, debate.WithStopCheck(watcher.ShouldStop))
	}

	if len(diagnoseSpecialists) > 0 {
		roles := make([]models.SpecialistRole, 0, len(diagnoseSpecialists))
		for _, s := range diagnoseSpecialists {
			roles = append(roles, models.SpecialistRole(strings.ToLower(strings.TrimSpace(s))))
		}
		opts = append(opts, debate.WithSpecialists(roles))
	}

	session, err := debate.NewSession(o, patient, debateCfg, opts...)
	if err != nil {
		return err
	}

	reporter := present.NewReporter(os.Stderr, diagnoseVerbose)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		reporter.Consume(session.Events())
	}()

	startedAt := time.Now()
	result, err := session.Run(ctx)
	<-reporterDone
	if err != nil {
		if errors.Is(err, debate.ErrAborted) {
			fmt.Fprintln(os.Stderr, color.YellowString("Session aborted by stop signal."))
			return nil
		}
		return fmt.Errorf("debate: %w", err)
	}

	// Step 3: present and persist
	fmt.Println(present.RenderResult(result))
	printUsage(client.Tracker())

	specialists := make([]string, 0, len(session.Specialists()))
	for _, role := range session.Specialists() {
		specialists = append(specialists, string(role))
	}

	if cfg.Output.TranscriptDB != "" {
		if err := persistResult(cfg.Output.TranscriptDB, result, specialists, patient.Summary(), startedAt); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: transcript not saved: %v\n", err)
		}
	}

	if diagnoseExport != "" {
		if err := state.ExportYAML(diagnoseExport, result, specialists); err != nil {
			return fmt.Errorf("export transcript: %w", err)
		}
		fmt.Printf("Transcript exported to %s\n", diagnoseExport)
	}

	return nil
}

// applyDiagnoseFlags layers command-line overrides onto the loaded config.
func applyDiagnoseFlags(cfg *config.Config) {
	if diagnoseNoSearch {
		cfg.Search.Enabled = false
	}
	if diagnoseMaxRounds > 0 {
		cfg.Debate.MaxRounds = diagnoseMaxRounds
	}
	if diagnoseModel != "" {
		cfg.Anthropic.Model = diagnoseModel
	}
	if diagnoseTranscript != "" {
		cfg.Output.TranscriptDB = diagnoseTranscript
	}
}

// loadImages parses path[:caption] specs and reads the image files.
func loadImages(specs []string) ([]models.ImageEvidence, error) {
	var images []models.ImageEvidence
	for _, spec := range specs {
		path, caption := spec, ""
		// A colon after position 1 separates the caption. A colon at
		// position 1 is a Windows drive letter.
		if idx := strings.Index(spec, ":"); idx > 1 {
			path, caption = spec[:idx], spec[idx+1:]
		}
		img, err := intake.LoadImage(path, caption)
		if err != nil {
			return nil, fmt.Errorf("loading image %s: %w", path, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func persistResult(dbPath string, result *models.Result, specialists []string, patientSummary string, startedAt time.Time) error {
	db, err := state.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	if err := db.SaveResult(result, specialists, patientSummary, startedAt); err != nil {
		return err
	}

	fmt.Printf("Transcript saved to %s (session %s)\n", db.Path(), result.SessionID)
	return nil
}

func printUsage(tracker *oracle.TokenTracker) {
	input, output := tracker.Total()
	fmt.Printf("%s %d calls, %d input / %d output tokens, $%.4f estimated\n",
		color.HiBlackString("usage:"), tracker.Calls(), input, output, tracker.Cost())
}
