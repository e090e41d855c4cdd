package allocation

import (
	"context"
	"errors"
)

// ErrProjectAlreadyAssigned is returned by a Writer when another writer has
// already claimed the project.
var ErrProjectAlreadyAssigned = errors.New("project is already assigned")

// Project is the allocation view of an unassigned project
type Project struct {
	ID             uint64
	Name           string
	EstimatedHours float64
	// HolderID is set when a live assignment exists although the project was
	// never flagged, i.e. an earlier run stopped between the two writes.
	HolderID *uint64
}

// Worker is the allocation view of an intern. GoalHours is nil when the
// intern has not declared a capacity.
type Worker struct {
	ID        uint64
	GoalHours *float64
}

// Rating is one self-assessed skill rating
type Rating struct {
	SkillID uint64
	Rating  int
}

// Reader is the read side the allocator depends on. Every call may fail
// independently.
type Reader interface {
	ListUnassignedProjects(ctx context.Context) ([]Project, error)
	ListWorkers(ctx context.Context, role string) ([]Worker, error)
	ListRequiredSkills(ctx context.Context, projectID uint64) ([]uint64, error)
	ListRatings(ctx context.Context, workerID uint64) ([]Rating, error)
}

// Writer is the write side the allocator depends on.
//
// CreateAssignment must be idempotent per project: repeating it for the same
// worker succeeds without a second record, and it returns
// ErrProjectAlreadyAssigned when the project is held by someone else.
// MarkProjectAssigned must only flip an unassigned project and return
// ErrProjectAlreadyAssigned otherwise.
type Writer interface {
	CreateAssignment(ctx context.Context, workerID, projectID uint64) error
	MarkProjectAssigned(ctx context.Context, projectID uint64) error
}

// Store combines both sides
type Store interface {
	Reader
	Writer
}
