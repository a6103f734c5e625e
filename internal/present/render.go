package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smhong/meddebate/pkg/models"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	voiceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	consensusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("34"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	disclaimerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("245")).
			MarginTop(1).
			PaddingTop(1)
)

const disclaimer = `⚠ This system is designed for research purposes and is not a substitute
for professional medical diagnosis. Always consult a qualified medical
professional for an accurate diagnosis.`

// RenderResult formats a completed session result for terminal display.
func RenderResult(result *models.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Session %s", result.SessionID)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s after %d round(s)", terminationLabel(result.Reason), result.Rounds)))
	b.WriteString("\n\n")

	switch {
	case len(result.Opinions) == 0:
		b.WriteString(warnStyle.Render("No diagnosis could be produced. Further examination is required."))
		b.WriteString("\n")
	case result.Consensus() && len(result.Opinions) == 1:
		b.WriteString(consensusStyle.Render("Consensus diagnosis"))
		b.WriteString("\n")
		b.WriteString(renderOpinion(result.Opinions[0]))
		b.WriteString("\n")
	default:
		b.WriteString(warnStyle.Render(fmt.Sprintf("Parallel output: %d candidate diagnoses", len(result.Opinions))))
		b.WriteString("\n")
		for _, op := range result.Opinions {
			b.WriteString(renderOpinion(op))
			b.WriteString("\n")
		}
	}

	b.WriteString(disclaimerStyle.Render(disclaimer))
	b.WriteString("\n")

	return b.String()
}

func renderOpinion(op models.Opinion) string {
	var b strings.Builder
	b.WriteString(voiceStyle.Render(op.Voice))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Diagnosis:"), op.Diagnosis))
	b.WriteString(fmt.Sprintf("%s %.2f\n", labelStyle.Render("Confidence:"), op.Confidence))
	if op.Reasoning != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Reasoning:"), op.Reasoning))
	}
	for _, ev := range op.Evidence {
		b.WriteString(fmt.Sprintf("  - %s\n", ev))
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func terminationLabel(reason models.TerminationReason) string {
	switch reason {
	case models.TerminatedByConsensus:
		return "Terminated by consensus"
	case models.TerminatedByStagnation:
		return "Terminated by stagnation intervention"
	case models.TerminatedByMaxRounds:
		return "Terminated at the round ceiling"
	default:
		return "Terminated"
	}
}
