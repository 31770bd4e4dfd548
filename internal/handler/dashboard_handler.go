package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/middleware"
	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context) (*models.DashboardOverview, bool, error)
	EnrollmentTrend(ctx context.Context, months int) ([]models.MonthBucket, bool, error)
	RevenueTrend(ctx context.Context, months int) ([]models.MonthBucket, bool, error)
	GradeDistribution(ctx context.Context) ([]models.GradeDistributionEntry, bool, error)
	PopularCourses(ctx context.Context, limit int) ([]models.CoursePopularity, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview godoc
// @Summary Headline KPIs
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, bool, error) {
		return h.service.Overview(ctx)
	})
}

// EnrollmentTrend godoc
// @Summary Enrollments per month
// @Tags Dashboard
// @Produce json
// @Param months query int false "Window size in months (default 6, max 24)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/enrollment-trend [get]
func (h *DashboardHandler) EnrollmentTrend(c *gin.Context) {
	months := queryInt(c, "months")
	h.respond(c, func(ctx context.Context) (interface{}, bool, error) {
		return h.service.EnrollmentTrend(ctx, months)
	})
}

// RevenueTrend godoc
// @Summary Net revenue per month
// @Tags Dashboard
// @Produce json
// @Param months query int false "Window size in months (default 6, max 24)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/revenue-trend [get]
func (h *DashboardHandler) RevenueTrend(c *gin.Context) {
	months := queryInt(c, "months")
	h.respond(c, func(ctx context.Context) (interface{}, bool, error) {
		return h.service.RevenueTrend(ctx, months)
	})
}

// GradeDistribution godoc
// @Summary Share of each letter grade
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/grade-distribution [get]
func (h *DashboardHandler) GradeDistribution(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (interface{}, bool, error) {
		return h.service.GradeDistribution(ctx)
	})
}

// PopularCourses godoc
// @Summary Courses ranked by enrollment
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Number of courses (default 5)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/popular-courses [get]
func (h *DashboardHandler) PopularCourses(c *gin.Context) {
	limit := queryInt(c, "limit")
	h.respond(c, func(ctx context.Context) (interface{}, bool, error) {
		return h.service.PopularCourses(ctx, limit)
	})
}

func (h *DashboardHandler) respond(c *gin.Context, load func(context.Context) (interface{}, bool, error)) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	data, cacheHit, err := load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, data, middleware.ResponseMeta(c))
}
