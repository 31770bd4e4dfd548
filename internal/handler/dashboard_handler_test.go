package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/middleware"
	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	reqidmiddleware "github.com/noah-isme/lingua-center-api/pkg/middleware/requestid"
)

type fakeDashboardSrv struct {
	overview   *models.DashboardOverview
	hit        bool
	err        error
	lastMonths int
	lastLimit  int
}

func (f *fakeDashboardSrv) Overview(context.Context) (*models.DashboardOverview, bool, error) {
	return f.overview, f.hit, f.err
}

func (f *fakeDashboardSrv) EnrollmentTrend(_ context.Context, months int) ([]models.MonthBucket, bool, error) {
	f.lastMonths = months
	return []models.MonthBucket{{Month: "2024-03", Count: 4}}, f.hit, f.err
}

func (f *fakeDashboardSrv) RevenueTrend(_ context.Context, months int) ([]models.MonthBucket, bool, error) {
	f.lastMonths = months
	return []models.MonthBucket{}, f.hit, f.err
}

func (f *fakeDashboardSrv) GradeDistribution(context.Context) ([]models.GradeDistributionEntry, bool, error) {
	return []models.GradeDistributionEntry{}, f.hit, f.err
}

func (f *fakeDashboardSrv) PopularCourses(_ context.Context, limit int) ([]models.CoursePopularity, bool, error) {
	f.lastLimit = limit
	return []models.CoursePopularity{}, f.hit, f.err
}

type responseEnvelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Error   map[string]interface{} `json:"error"`
}

func TestDashboardHandlerOverviewReportsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		overview: &models.DashboardOverview{TotalStudents: 12},
		hit:      true,
	})

	r := gin.New()
	r.Use(reqidmiddleware.Middleware(), middleware.WithResponseMeta())
	r.GET("/dashboard/overview", handler.Overview)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/overview", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, "req-42", envelope.Meta["request_id"])
	assert.Equal(t, float64(12), envelope.Data["totalStudents"])
}

func TestDashboardHandlerTrendForwardsMonths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeDashboardSrv{}
	handler := NewDashboardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/enrollment-trend?months=12", nil)

	handler.EnrollmentTrend(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, service.lastMonths)
	assert.Contains(t, rec.Body.String(), `"cache_hit":false`)
}

func TestDashboardHandlerPopularCoursesDefaultsLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeDashboardSrv{}
	handler := NewDashboardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/popular-courses?limit=abc", nil)

	handler.PopularCourses(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, service.lastLimit)
}

func TestDashboardHandlerServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.Internal(errors.New("db down"), "failed to load dashboard")})

	var c struct{ Errors []*gin.Error }
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		ctx.Next()
		c.Errors = ctx.Errors
	})
	r.Use(reqidmiddleware.Middleware(), middleware.WithResponseMeta())
	r.GET("/dashboard/overview", handler.Overview)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/overview", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
	assert.Len(t, c.Errors, 1)
}

func TestDashboardHandlerNilService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(nil)

	r := gin.New()
	r.Use(reqidmiddleware.Middleware(), middleware.WithResponseMeta())
	r.GET("/dashboard/overview", handler.Overview)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/overview", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
