package allocation

import "time"

type OutcomeStatus string

const (
	OutcomeAssigned   OutcomeStatus = "assigned"
	OutcomeUnassigned OutcomeStatus = "unassigned"
	OutcomeSkipped    OutcomeStatus = "skipped"
	OutcomeFailed     OutcomeStatus = "failed"
	OutcomeConflict   OutcomeStatus = "conflict"
	// OutcomeConverged marks a project whose flag was set for an assignment
	// recorded by an earlier run
	OutcomeConverged OutcomeStatus = "converged"
)

// Outcome describes what happened to one project during a run
type Outcome struct {
	ProjectID uint64
	Status    OutcomeStatus
	// WorkerID and Score are set when a candidate was selected
	WorkerID uint64
	Score    int
	// SkippedWorkers counts workers whose ratings could not be read
	SkippedWorkers int
	Error          string
}

// Result is the structured report of one allocation run
type Result struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome

	Assigned   int
	Unassigned int
	Skipped    int
	Failed     int
	Conflicts  int
	Converged  int
}

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case OutcomeAssigned:
		r.Assigned++
	case OutcomeUnassigned:
		r.Unassigned++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	case OutcomeConflict:
		r.Conflicts++
	case OutcomeConverged:
		r.Converged++
	}
}

// Duration returns how long the run took
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
