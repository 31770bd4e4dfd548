package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/service"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type reportExporter interface {
	Export(ctx context.Context, reportType models.ReportType, rawFormat string) (*models.ReportFile, error)
}

type reportScheduler interface {
	Schedule(ctx context.Context, req models.ScheduleReportRequest, actorID *int64) (*models.ReportJob, error)
	GetStatus(ctx context.Context, id string) (*models.ReportJob, error)
	ResolveDownload(ctx context.Context, token string) (*service.ReportDownload, error)
}

// ReportHandler exposes synchronous exports and scheduled report jobs.
type ReportHandler struct {
	exports reportExporter
	reports reportScheduler
}

// NewReportHandler constructs handler.
func NewReportHandler(exports reportExporter, reports reportScheduler) *ReportHandler {
	return &ReportHandler{exports: exports, reports: reports}
}

// Export godoc
// @Summary Download a report
// @Tags Reports
// @Produce octet-stream
// @Param type path string true "STUDENTS, PAYMENTS, GRADES or ENROLLMENTS"
// @Param format query string false "PDF, EXCEL or CSV (default CSV)"
// @Success 200 {file} file
// @Router /reports/{type}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	file, err := h.exports.Export(c.Request.Context(), models.ReportType(c.Param("type")), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// Schedule godoc
// @Summary Schedule a report for background generation
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body models.ScheduleReportRequest true "Report job payload"
// @Success 202 {object} response.Envelope
// @Router /reports/schedule [post]
func (h *ReportHandler) Schedule(c *gin.Context) {
	var req models.ScheduleReportRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.reports.Schedule(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", "/api/v1/reports/jobs/"+job.ID)
	response.JSON(c, http.StatusAccepted, job)
}

// Status godoc
// @Summary Report job status
// @Tags Reports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /reports/jobs/{id} [get]
func (h *ReportHandler) Status(c *gin.Context) {
	job, err := h.reports.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Download godoc
// @Summary Download a generated report through its signed link
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Router /reports/download/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	download, err := h.reports.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.Reader.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", download.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, download.Size, download.ContentType, download.Reader, nil)
}
