package dto

import (
	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
)

// OutcomeDTO describes what a run did with one project
type OutcomeDTO struct {
	ProjectID      uint64                   `json:"project_id"`
	Status         allocation.OutcomeStatus `json:"status"`
	InternID       *uint64                  `json:"intern_id,omitempty"`
	Score          *int                     `json:"score,omitempty"`
	SkippedInterns int                      `json:"skipped_interns,omitempty"`
	Error          string                   `json:"error,omitempty"`
}

// AllocationResponse is returned by the allocation trigger, also on failure
type AllocationResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	RunID      string              `json:"run_id,omitempty"`
	Assigned   int                 `json:"assigned"`
	Unassigned int                 `json:"unassigned"`
	Skipped    int                 `json:"skipped"`
	Failed     int                 `json:"failed"`
	Conflicts  int                 `json:"conflicts"`
	Converged  int                 `json:"converged"`
	Outcomes   []OutcomeDTO        `json:"outcomes"`
	Error      *apierrors.APIError `json:"error,omitempty"`
}

// ToAllocationResponse converts a run result. result may be nil.
func ToAllocationResponse(result *allocation.Result) AllocationResponse {
	resp := AllocationResponse{Outcomes: []OutcomeDTO{}}
	if result == nil {
		return resp
	}

	resp.RunID = result.RunID
	resp.Assigned = result.Assigned
	resp.Unassigned = result.Unassigned
	resp.Skipped = result.Skipped
	resp.Failed = result.Failed
	resp.Conflicts = result.Conflicts
	resp.Converged = result.Converged

	for _, o := range result.Outcomes {
		out := OutcomeDTO{
			ProjectID:      o.ProjectID,
			Status:         o.Status,
			SkippedInterns: o.SkippedWorkers,
			Error:          o.Error,
		}
		if o.WorkerID != 0 {
			workerID, score := o.WorkerID, o.Score
			out.InternID = &workerID
			out.Score = &score
		}
		resp.Outcomes = append(resp.Outcomes, out)
	}
	return resp
}
