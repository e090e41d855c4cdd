package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	"github.com/yukikurage/intern-allocation-api/internal/lock"
	"github.com/yukikurage/intern-allocation-api/internal/metrics"
)

var ErrAllocationInProgress = errors.New("an allocation run is already in progress")

// Runner performs one allocation pass
type Runner interface {
	Run(ctx context.Context) (*allocation.Result, error)
}

// AllocationService triggers allocation runs, one at a time
type AllocationService struct {
	runner  Runner
	locker  lock.Locker
	metrics *metrics.Recorder
}

// NewAllocationService creates a new AllocationService. recorder may be nil.
func NewAllocationService(runner Runner, locker lock.Locker, recorder *metrics.Recorder) *AllocationService {
	return &AllocationService{
		runner:  runner,
		locker:  locker,
		metrics: recorder,
	}
}

// RunAllocation runs the allocator while holding the run lock. The result is
// returned alongside allocation errors so callers can report counts.
func (s *AllocationService) RunAllocation(ctx context.Context) (*allocation.Result, error) {
	release, err := s.locker.TryLock(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			if s.metrics != nil {
				s.metrics.ObserveBusy()
			}
			return nil, ErrAllocationInProgress
		}
		return nil, fmt.Errorf("failed to acquire allocation lock: %w", err)
	}
	defer release()

	result, err := s.runner.Run(ctx)
	if s.metrics != nil {
		s.metrics.ObserveRun(result, err)
	}
	return result, err
}
