package intake

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/smhong/meddebate/internal/oracle"
	"github.com/smhong/meddebate/pkg/models"
)

// CompletionMarker ends the inquiry when it appears in the interviewer's
// reply.
const CompletionMarker = "INQUIRY COMPLETE"

const interviewerInstruction = `You are a diagnostic medicine specialist conducting a
medical inquiry to gather accurate diagnostic information.

Rules:
1. Ask only ONE question at a time
2. Age and sex are mandatory
3. Always check for chronic conditions and medications
4. Check family history when needed
5. Understand symptoms in detail
6. If the patient provided images, refer to them in your questions

When the inquiry is complete, clearly state "INQUIRY COMPLETE".`

// maxExchanges bounds the dialogue so a model that never emits the
// completion marker cannot hold the session open forever.
const maxExchanges = 40

// Interviewer runs the intake dialogue: the oracle asks one question at a
// time, answers are read from In, and the exchange ends when the oracle
// declares the inquiry complete. Reading from an io.Reader keeps the loop
// testable; the CLI passes stdin.
type Interviewer struct {
	// Oracle supplies the interviewer's questions and the final extraction.
	Oracle oracle.Oracle
	// In is the source of patient answers.
	In io.Reader
	// Out receives questions and progress text.
	Out io.Writer
	// Images are attached to every interviewer call.
	Images []models.ImageEvidence

	// searches accumulates web lookups the interviewer made while asking.
	searches []models.SearchResult
}

// Run conducts the inquiry and returns the completed patient context. The
// context carries the structured fields extracted from the transcript, the
// transcript itself as notes, and the attached images.
func (iv *Interviewer) Run(ctx context.Context) (*models.PatientContext, error) {
	scanner := bufio.NewScanner(iv.In)

	first, err := iv.ask(ctx, "A patient has arrived. Start the first inquiry question.")
	if err != nil {
		return nil, fmt.Errorf("start inquiry: %w", err)
	}
	fmt.Fprintf(iv.Out, "[intake] %s\n", first)

	var transcript strings.Builder
	fmt.Fprintf(&transcript, "Question: %s\n\n", first)

	for i := 0; i < maxExchanges; i++ {
		fmt.Fprint(iv.Out, "> ")
		if !scanner.Scan() {
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}
		fmt.Fprintf(&transcript, "Patient answer: %s\n\n", answer)

		reply, err := iv.ask(ctx, transcript.String()+
			"Based on the patient's answers, ask the next question, or state 'INQUIRY COMPLETE' if sufficient information has been obtained.")
		if err != nil {
			return nil, fmt.Errorf("inquiry turn: %w", err)
		}

		if strings.Contains(reply, CompletionMarker) {
			fmt.Fprintln(iv.Out, "[intake] inquiry complete")
			return iv.finish(ctx, transcript.String())
		}

		fmt.Fprintf(iv.Out, "[intake] %s\n", reply)
		fmt.Fprintf(&transcript, "Question: %s\n\n", reply)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read answer: %w", err)
	}

	// Input exhausted or exchange budget hit: proceed with what we have.
	return iv.finish(ctx, transcript.String())
}

// ask issues one interviewer call.
func (iv *Interviewer) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := iv.Oracle.Invoke(ctx, oracle.Request{
		RoleInstruction: interviewerInstruction,
		Prompt:          prompt,
		Evidence:        iv.Images,
		EnableTools:     true,
	})
	if err != nil {
		return "", err
	}
	for _, tc := range resp.ToolCalls {
		q := tc.Query()
		if q == "" {
			continue
		}
		fmt.Fprintf(iv.Out, "[intake] 🔍 %s\n", q)
		iv.searches = append(iv.searches, models.SearchResult{Query: q, Source: tc.Name})
	}
	return strings.TrimSpace(resp.Text), nil
}

// finish builds the patient context from the transcript. Extraction failure
// is not fatal: the transcript itself remains the context.
func (iv *Interviewer) finish(ctx context.Context, transcript string) (*models.PatientContext, error) {
	patient, err := ExtractPatientInfo(ctx, iv.Oracle, transcript)
	if err != nil {
		patient = &models.PatientContext{}
	}
	patient.Notes = transcript
	patient.Images = iv.Images
	patient.SearchResults = iv.searches
	return patient, nil
}
