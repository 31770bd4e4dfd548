package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lingua-center-api/internal/handler"
	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type tokenTable map[string]models.UserRole

func (t tokenTable) ValidateToken(token string) (*models.JWTClaims, error) {
	role, ok := t[token]
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.JWTClaims{UserID: 1, Role: role}, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := Handlers{
		Auth:          handler.NewAuthHandler(nil),
		Users:         handler.NewUserHandler(nil),
		Students:      handler.NewStudentHandler(nil),
		Courses:       handler.NewCourseHandler(nil),
		Instructors:   handler.NewInstructorHandler(nil),
		Grades:        handler.NewGradeHandler(nil),
		Payments:      handler.NewPaymentHandler(nil),
		Leads:         handler.NewLeadHandler(nil),
		Opportunities: handler.NewOpportunityHandler(nil),
		Dashboard:     handler.NewDashboardHandler(nil),
		Notifications: handler.NewNotificationHandler(nil),
		Reports:       handler.NewReportHandler(nil, nil),
		Integrations:  handler.NewIntegrationHandler(nil, nil),
		Metrics:       handler.NewMetricsHandler(nil, nil),
	}
	tokens := tokenTable{
		"admin":      models.RoleAdmin,
		"staff":      models.RoleStaff,
		"instructor": models.RoleInstructor,
		"student":    models.RoleStudent,
	}
	Register(r.Group("/api/v1"), h, Deps{Tokens: tokens})
	return r
}

func call(r *gin.Engine, method, target, token string) int {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRegisterRequiresToken(t *testing.T) {
	r := newTestEngine()

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/students", ""))
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/students", "forged"))
}

func TestRegisterRoleTable(t *testing.T) {
	r := newTestEngine()

	cases := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"student cannot delete", http.MethodDelete, "/api/v1/students/1", "student", http.StatusForbidden},
		{"staff cannot delete", http.MethodDelete, "/api/v1/courses/1", "staff", http.StatusForbidden},
		{"instructor cannot create students", http.MethodPost, "/api/v1/students", "instructor", http.StatusForbidden},
		{"student cannot read leads", http.MethodGet, "/api/v1/leads", "student", http.StatusForbidden},
		{"student cannot read pipeline", http.MethodGet, "/api/v1/opportunities/pipeline", "student", http.StatusForbidden},
		{"staff cannot manage users", http.MethodGet, "/api/v1/users", "staff", http.StatusForbidden},
		{"student cannot read system metrics", http.MethodGet, "/api/v1/system/metrics", "student", http.StatusForbidden},
		{"instructor cannot schedule reports", http.MethodPost, "/api/v1/reports/schedule", "instructor", http.StatusForbidden},
		{"staff cannot register webhooks", http.MethodPost, "/api/v1/integrations/webhooks", "staff", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, call(r, tc.method, tc.target, tc.token))
		})
	}
}

func TestRegisterLetsPermittedRolesThrough(t *testing.T) {
	r := newTestEngine()

	// Handlers without a backing service answer 500, which proves the guards passed.
	assert.Equal(t, http.StatusInternalServerError, call(r, http.MethodGet, "/api/v1/dashboard/overview", "staff"))
	assert.Equal(t, http.StatusInternalServerError, call(r, http.MethodGet, "/api/v1/system/metrics", "instructor"))
}
