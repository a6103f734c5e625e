package debate

import (
	"fmt"
	"strings"

	"github.com/smhong/meddebate/pkg/models"
)

// Role instructions for the fixed voices of the protocol. Specialist groups
// get their instruction built per session from the patient context.

const selectorInstruction = `You are a diagnostic medicine specialist who triages patients
to the medical specialties best suited to diagnose them.

Based on the patient information, choose 2-6 relevant specialties.
Respond with a single list in exactly this format: ["specialty1", "specialty2", ...]

Example specialties: internal medicine, neurology, orthopedics, otolaryngology,
ophthalmology, dermatology, psychiatry, cardiology, pulmonology,
gastroenterology, radiology.

If images are provided, take them into account when selecting specialties.`

const refereeCheckInstruction = `You are the referee of a medical diagnostic debate.

Your role:
1. Verify the medical evidence behind each submitted opinion
2. Detect hallucinations and claims with no supporting evidence
3. Order corrections for flawed opinions
4. Approve opinions that are sound

For every opinion whose claims are not supported by its stated evidence,
include a line in exactly this format:
UNSUPPORTED: <voice>

If image findings are cited, verify their plausibility as well.
Be strict and objective.`

const refereeVerdictInstruction = `You are the referee concluding a round of medical debate.

Consensus is reached when:
- All specialists agree on the same or a very similar diagnosis
- The evidence is sufficient and consistent

Consensus is NOT reached when:
- Two or more different diagnoses remain
- The evidence is contradictory

State your verdict clearly. If and only if consensus is reached, include
the exact phrase "CONSENSUS REACHED" followed by the agreed diagnosis.`

const crossDebateInstructionFmt = `You are a medical specialist performing cross-examination
and rebuttal of other specialists' opinions.

Referee feedback on the current opinions:
%s

Rebut or concede on medical evidence, logically and concisely.`

const thirdPerspectiveInstruction = `You are an independent specialist brought in to move a
stalled debate forward.

Offer a genuinely new "third perspective" that has not been discussed.
Point out blind spots or overlooked possibilities in the existing opinions.

Respond in this format:
Diagnosis: [diagnosis]
Confidence: [number between 0 and 1]
Reasoning: [medical reasoning]`

// debateInstruction builds the shared system instruction for specialist
// group calls in a given round.
func debateInstruction(patient *models.PatientContext, round int) string {
	return fmt.Sprintf(`You are part of a multi-specialist medical deliberation.

Patient information:
%s

Current round: %d

Five-stage debate protocol:
1. Opinion: present an initial diagnostic opinion
2. Referee Check: evidence validation and hallucination check
3. Cross-Counter: mutual rebuttal
4. Rebuttal: counter-rebuttal
5. Final Judgment: referee verdict

Maintain a neutral expert stance and state medical evidence explicitly.`,
		patient.Summary(), round)
}

// opinionPrompt asks one specialist group for its initial diagnosis.
func opinionPrompt(idx int, group models.SpecialistGroup) string {
	return fmt.Sprintf(`As group %d (%s + %s), analyze the patient's presentation and give
your initial diagnostic opinion. Refer to any provided images.

Respond in this format:
Diagnosis: [diagnosis]
Confidence: [number between 0 and 1]
Reasoning: [medical reasoning]
Evidence:
- [supporting evidence, one item per line]`, idx+1, group.First, group.Second)
}

// checkPrompt presents all current opinions to the referee for validation.
func checkPrompt(opinions []models.Opinion) string {
	var b strings.Builder
	b.WriteString("Validate the following diagnostic opinions:\n")
	for _, op := range opinions {
		fmt.Fprintf(&b, "\n[%s]\nDiagnosis: %s\nConfidence: %.2f\nReasoning: %s\n",
			op.Voice, op.Diagnosis, op.Confidence, op.Reasoning)
	}
	return b.String()
}

// rebuttalPrompt presents one opinion against all others for cross-debate.
func rebuttalPrompt(own models.Opinion, others []models.Opinion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your opinion: %s\n\nOther opinions:\n", own.Diagnosis)
	for _, op := range others {
		fmt.Fprintf(&b, "- %s: %s\n", op.Voice, op.Diagnosis)
	}
	b.WriteString("\nPerform your cross-examination.")
	return b.String()
}

// verdictPrompt presents the collected rebuttals for the final judgment.
func verdictPrompt(rebuttals []string) string {
	var b strings.Builder
	b.WriteString("Weigh the following rebuttals and deliver your final judgment:\n")
	for i, r := range rebuttals {
		fmt.Fprintf(&b, "\nRebuttal %d: %s\n", i+1, r)
	}
	return b.String()
}

// thirdPerspectivePrompt presents the stagnant opinion set to the
// independent consultant.
func thirdPerspectivePrompt(opinions []models.Opinion) string {
	var b strings.Builder
	b.WriteString("Current opinions:\n")
	for _, op := range opinions {
		fmt.Fprintf(&b, "- %s: %s\n", op.Voice, op.Diagnosis)
	}
	b.WriteString("\nPresent your third perspective.")
	return b.String()
}
