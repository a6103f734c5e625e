// Package present renders session progress and final results for the
// terminal. It consumes the debate event stream for live progress lines
// and formats the final result as a styled summary.
package present

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/smhong/meddebate/internal/debate"
)

// Reporter writes human-readable progress lines for debate events.
type Reporter struct {
	out     io.Writer
	verbose bool
}

// NewReporter creates a Reporter writing to out. When verbose is false,
// per-stage completion events are suppressed and only round boundaries,
// degradations, and interventions are shown.
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// Consume drains the event channel, printing a line per event.
// It returns when the channel is closed.
func (r *Reporter) Consume(events <-chan debate.Event) {
	for ev := range events {
		r.report(ev)
	}
}

func (r *Reporter) report(ev debate.Event) {
	switch ev.Type {
	case debate.EventSessionStarted:
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("●"), ev.Message)
	case debate.EventRoundStarted:
		fmt.Fprintf(r.out, "%s Round %d\n", color.CyanString("▸"), ev.Round)
	case debate.EventStageCompleted:
		if r.verbose {
			fmt.Fprintf(r.out, "  %s %s\n", color.HiBlackString("·"), ev.Message)
		}
	case debate.EventSearch:
		fmt.Fprintf(r.out, "  %s %s: %s\n", color.BlueString("🔍"), ev.Voice, ev.Message)
	case debate.EventDegraded:
		fmt.Fprintf(r.out, "  %s %s\n", color.YellowString("⚠"), ev.Message)
	case debate.EventIntervention:
		fmt.Fprintf(r.out, "  %s referee intervention: %s\n", color.MagentaString("✦"), ev.Message)
	case debate.EventSessionDone:
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓"), ev.Message)
	}
}
