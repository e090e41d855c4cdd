package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/intern-allocation-api/internal/logger"
	"github.com/yukikurage/intern-allocation-api/internal/models"
)

var (
	ErrListProjects   = errors.New("failed to list unassigned projects")
	ErrListWorkers    = errors.New("failed to list workers")
	ErrPartialFailure = errors.New("one or more projects could not be assigned")
)

// Allocator hands unassigned projects to the best scoring intern with enough
// declared capacity. One Run is a single sequential pass.
type Allocator struct {
	reader         Reader
	writer         Writer
	role           string
	deductCapacity bool
	log            *logrus.Entry
	now            func() time.Time
}

type Option func(*Allocator)

// WithRole changes the role filter used to list workers
func WithRole(role string) Option {
	return func(a *Allocator) { a.role = role }
}

// WithCapacityDeduction makes each win consume the winner's remaining hours
// for the rest of the run, so one intern cannot be handed more work than
// they declared.
func WithCapacityDeduction(enabled bool) Option {
	return func(a *Allocator) { a.deductCapacity = enabled }
}

func WithLogger(entry *logrus.Entry) Option {
	return func(a *Allocator) { a.log = entry }
}

func withClock(now func() time.Time) Option {
	return func(a *Allocator) { a.now = now }
}

func NewAllocator(reader Reader, writer Writer, opts ...Option) *Allocator {
	a := &Allocator{
		reader: reader,
		writer: writer,
		role:   string(models.RoleIntern),
		log:    logger.Log.WithField("component", "allocator"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs one allocation pass. Failing to list projects or workers
// aborts the run before any write. Per-project write failures don't stop the
// pass; they are reported in the result and as ErrPartialFailure.
func (a *Allocator) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: a.now(),
		Outcomes:  []Outcome{},
	}
	log := a.log.WithField("run_id", result.RunID)
	defer func() { result.FinishedAt = a.now() }()

	projects, err := a.reader.ListUnassignedProjects(ctx)
	if err != nil {
		log.WithError(err).Error("Allocation aborted: listing projects failed")
		return result, fmt.Errorf("%w: %v", ErrListProjects, err)
	}
	if len(projects) == 0 {
		log.Info("No unassigned projects")
		return result, nil
	}

	workers, err := a.reader.ListWorkers(ctx, a.role)
	if err != nil {
		log.WithError(err).Error("Allocation aborted: listing workers failed")
		return result, fmt.Errorf("%w: %v", ErrListWorkers, err)
	}

	var remaining map[uint64]float64
	if a.deductCapacity {
		remaining = make(map[uint64]float64, len(workers))
		for _, w := range workers {
			if w.GoalHours != nil {
				remaining[w.ID] = *w.GoalHours
			}
		}
	}

	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Allocation interrupted")
			return result, err
		}

		outcome := a.allocate(ctx, project, workers, remaining)
		result.record(outcome)
		a.logOutcome(log, outcome)
	}

	log.WithFields(logger.Fields{
		"assigned":   result.Assigned,
		"unassigned": result.Unassigned,
		"skipped":    result.Skipped,
		"failed":     result.Failed,
		"conflicts":  result.Conflicts,
		"converged":  result.Converged,
	}).Info("Allocation run finished")

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d projects failed", ErrPartialFailure, result.Failed, len(projects))
	}
	return result, nil
}

func (a *Allocator) allocate(ctx context.Context, project Project, workers []Worker, remaining map[uint64]float64) Outcome {
	outcome := Outcome{ProjectID: project.ID}

	if project.HolderID != nil {
		return a.converge(ctx, project, remaining)
	}

	required, err := a.reader.ListRequiredSkills(ctx, project.ID)
	if err != nil {
		outcome.Status = OutcomeSkipped
		outcome.Error = fmt.Sprintf("failed to list required skills: %v", err)
		return outcome
	}

	var best *Worker
	bestScore := -1
	for i := range workers {
		worker := workers[i]

		ratings, err := a.reader.ListRatings(ctx, worker.ID)
		if err != nil {
			outcome.SkippedWorkers++
			continue
		}

		score := Score(required, IndexRatings(ratings))
		if !a.eligible(worker, project, remaining) {
			continue
		}
		// strict comparison keeps the earliest worker on ties
		if score > bestScore {
			best = &worker
			bestScore = score
		}
	}

	if best == nil {
		outcome.Status = OutcomeUnassigned
		return outcome
	}
	outcome.WorkerID = best.ID
	outcome.Score = bestScore

	createErr := a.writer.CreateAssignment(ctx, best.ID, project.ID)
	if createErr != nil && !errors.Is(createErr, ErrProjectAlreadyAssigned) {
		outcome.Status = OutcomeFailed
		outcome.Error = fmt.Sprintf("failed to create assignment: %v", createErr)
		return outcome
	}

	// The flag is set even when the assignment already existed so that a
	// project left half-written by an earlier run converges.
	markErr := a.writer.MarkProjectAssigned(ctx, project.ID)
	if markErr != nil && !errors.Is(markErr, ErrProjectAlreadyAssigned) {
		outcome.Status = OutcomeFailed
		outcome.Error = fmt.Sprintf("assignment recorded but project flag not set: %v", markErr)
		return outcome
	}

	if createErr != nil || markErr != nil {
		outcome.Status = OutcomeConflict
		outcome.Error = ErrProjectAlreadyAssigned.Error()
		return outcome
	}

	if remaining != nil {
		remaining[best.ID] -= project.EstimatedHours
	}
	outcome.Status = OutcomeAssigned
	return outcome
}

// converge finishes a project whose assignment landed without the flag. The
// recorded holder is authoritative, so nobody is scored.
func (a *Allocator) converge(ctx context.Context, project Project, remaining map[uint64]float64) Outcome {
	outcome := Outcome{ProjectID: project.ID, WorkerID: *project.HolderID}

	err := a.writer.MarkProjectAssigned(ctx, project.ID)
	switch {
	case err == nil:
		outcome.Status = OutcomeConverged
		if remaining != nil {
			remaining[outcome.WorkerID] -= project.EstimatedHours
		}
	case errors.Is(err, ErrProjectAlreadyAssigned):
		outcome.Status = OutcomeConflict
		outcome.Error = err.Error()
	default:
		outcome.Status = OutcomeFailed
		outcome.Error = fmt.Sprintf("failed to flag previously assigned project: %v", err)
	}
	return outcome
}

func (a *Allocator) eligible(worker Worker, project Project, remaining map[uint64]float64) bool {
	if !Eligible(worker.GoalHours, project.EstimatedHours) {
		return false
	}
	if remaining == nil {
		return true
	}
	left, ok := remaining[worker.ID]
	return ok && left >= project.EstimatedHours
}

func (a *Allocator) logOutcome(log *logrus.Entry, o Outcome) {
	entry := log.WithFields(logger.Fields{
		"project_id": o.ProjectID,
		"outcome":    o.Status,
	})
	if o.WorkerID != 0 {
		entry = entry.WithFields(logger.Fields{"worker_id": o.WorkerID, "score": o.Score})
	}
	if o.SkippedWorkers > 0 {
		entry = entry.WithField("skipped_workers", o.SkippedWorkers)
	}

	switch o.Status {
	case OutcomeFailed:
		entry.Error(o.Error)
	case OutcomeSkipped, OutcomeConflict:
		entry.Warn(o.Error)
	default:
		entry.Debug("Project evaluated")
	}
}
