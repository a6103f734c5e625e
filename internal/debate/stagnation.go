package debate

import "github.com/smhong/meddebate/pkg/models"

// DefaultStagnationThreshold is the number of consecutive unchanged rounds
// after which the referee intervenes.
const DefaultStagnationThreshold = 10

// StagnationDetector tracks whether the set of distinct diagnoses has
// stopped changing across rounds. API calls can keep succeeding while the
// debate makes no semantic progress; this is the mechanism that notices.
type StagnationDetector struct {
	threshold int
	history   []string
	count     int
}

// NewStagnationDetector creates a detector with the given threshold.
// A threshold below 1 uses DefaultStagnationThreshold.
func NewStagnationDetector(threshold int) *StagnationDetector {
	if threshold < 1 {
		threshold = DefaultStagnationThreshold
	}
	return &StagnationDetector{threshold: threshold}
}

// Observe records the opinion set for the round just completed and reports
// whether stagnation has reached the threshold. An unchanged canonical
// signature increments the counter; a new signature resets it to 0 and is
// appended to the history. An empty opinion set is never stagnation.
func (d *StagnationDetector) Observe(opinions []models.Opinion) bool {
	if len(opinions) == 0 {
		return false
	}

	sig := models.Signature(opinions)
	if len(d.history) == 0 {
		d.history = append(d.history, sig)
		return false
	}

	if sig == d.history[len(d.history)-1] {
		d.count++
	} else {
		d.count = 0
		d.history = append(d.history, sig)
	}

	return d.count >= d.threshold
}

// Reset clears the stagnation counter without discarding signature history.
// Used after an intervention injects a new perspective.
func (d *StagnationDetector) Reset() {
	d.count = 0
}

// Count returns the current consecutive-repeat count.
func (d *StagnationDetector) Count() int {
	return d.count
}

// History returns the sequence of distinct signatures seen, in order.
func (d *StagnationDetector) History() []string {
	return d.history
}
