package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ListInterns returns interns with goal hours and ratings
func (h *ReportHandler) ListInterns(c *gin.Context) {
	interns, err := h.reportService.ListInterns()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch interns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interns": lo.Map(interns, func(u models.User, _ int) dto.ProfileDTO {
			return dto.ToProfileDTO(u)
		}),
	})
}

func (h *ReportHandler) CompletedReport(c *gin.Context) {
	rows, err := h.reportService.CompletedReport()
	if err != nil {
		apierrors.InternalError(c, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completed": lo.Map(rows, func(r services.CompletedReportRow, _ int) dto.CompletedReportDTO {
			return dto.ToCompletedReportDTO(r)
		}),
	})
}

func (h *ReportHandler) InternReport(c *gin.Context) {
	rows, err := h.reportService.InternReport()
	if err != nil {
		apierrors.InternalError(c, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interns": lo.Map(rows, func(r services.InternReportRow, _ int) dto.InternReportDTO {
			return dto.ToInternReportDTO(r)
		}),
	})
}
