package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/logger"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

type AllocationHandler struct {
	allocationService *services.AllocationService
}

func NewAllocationHandler(allocationService *services.AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService}
}

// RunAllocation triggers one allocation run. Counts and per-project outcomes
// are included in failure responses as well.
func (h *AllocationHandler) RunAllocation(c *gin.Context) {
	result, err := h.allocationService.RunAllocation(c.Request.Context())
	resp := dto.ToAllocationResponse(result)

	if err == nil {
		resp.Success = true
		resp.Message = "Allocation completed"
		c.JSON(http.StatusOK, resp)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrAllocationInProgress):
		status = http.StatusConflict
		resp.Error = apierrors.NewAPIError(apierrors.ErrCodeAllocationInProgress, err.Error())
	case errors.Is(err, allocation.ErrListProjects):
		resp.Error = apierrors.NewAPIError(apierrors.ErrCodeListProjectsFailed, allocation.ErrListProjects.Error())
	case errors.Is(err, allocation.ErrListWorkers):
		resp.Error = apierrors.NewAPIError(apierrors.ErrCodeListWorkersFailed, allocation.ErrListWorkers.Error())
	case errors.Is(err, allocation.ErrPartialFailure):
		resp.Error = apierrors.NewAPIError(apierrors.ErrCodePartialFailure, err.Error())
	default:
		logger.Log.WithError(err).Error("Allocation run failed")
		resp.Error = apierrors.NewAPIError(apierrors.ErrCodeInternalError, "Allocation run failed")
	}
	resp.Message = resp.Error.Message

	c.JSON(status, resp)
}
