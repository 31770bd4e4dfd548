package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type fakeStudentSrv struct {
	lastFilter models.StudentFilter
	lastEnroll models.EnrollRequest
	student    *models.Student
	err        error
	deletedID  int64
}

func (f *fakeStudentSrv) List(_ context.Context, filter models.StudentFilter) (models.PagedResult[models.StudentListItem], error) {
	f.lastFilter = filter
	return models.NewPagedResult([]models.StudentListItem{{ID: 1, FullName: "Ana Silva"}}, 1, filter.PageRequest), f.err
}

func (f *fakeStudentSrv) Search(context.Context, string) ([]models.Student, error) {
	return []models.Student{}, f.err
}

func (f *fakeStudentSrv) Get(context.Context, int64) (*models.Student, error) {
	return f.student, f.err
}

func (f *fakeStudentSrv) Create(_ context.Context, req models.StudentRequest) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Student{ID: 42, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}, nil
}

func (f *fakeStudentSrv) Update(_ context.Context, id int64, req models.StudentRequest) (*models.Student, error) {
	return &models.Student{ID: id, FirstName: req.FirstName}, f.err
}

func (f *fakeStudentSrv) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func (f *fakeStudentSrv) Enroll(_ context.Context, studentID int64, req models.EnrollRequest) (*models.Enrollment, error) {
	f.lastEnroll = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Enrollment{ID: 9, StudentID: studentID, CourseID: req.CourseID}, nil
}

func (f *fakeStudentSrv) Unenroll(context.Context, int64, int64) error { return f.err }

func (f *fakeStudentSrv) Courses(context.Context, int64) ([]models.EnrollmentDetail, error) {
	return []models.EnrollmentDetail{}, f.err
}

func (f *fakeStudentSrv) Summary(_ context.Context, id int64) (*models.StudentSummary, error) {
	return &models.StudentSummary{Student: models.Student{ID: id}}, f.err
}

func studentRouter(srv *fakeStudentSrv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStudentHandler(srv)
	r := gin.New()
	r.GET("/api/v1/students", h.List)
	r.POST("/api/v1/students", h.Create)
	r.GET("/api/v1/students/:id", h.Get)
	r.DELETE("/api/v1/students/:id", h.Delete)
	r.POST("/api/v1/students/:id/courses", h.Enroll)
	r.DELETE("/api/v1/students/:id/courses/:courseId", h.Unenroll)
	return r
}

func newJSONRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return serve(r, newJSONRequest(method, target, body))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestStudentHandlerListParsesQuery(t *testing.T) {
	srv := &fakeStudentSrv{}
	rec := perform(studentRouter(srv), http.MethodGet, "/api/v1/students?pageNumber=2&pageSize=200&active=true&search=+ana+", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, srv.lastFilter.PageNumber)
	assert.Equal(t, models.DefaultPageSize, srv.lastFilter.PageSize)
	assert.Equal(t, "ana", srv.lastFilter.Search)
	require.NotNil(t, srv.lastFilter.Active)
	assert.True(t, *srv.lastFilter.Active)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, float64(1), envelope.Data["totalCount"])
	assert.Equal(t, true, envelope.Data["hasPrevious"])
}

func TestStudentHandlerListRejectsBadBool(t *testing.T) {
	rec := perform(studentRouter(&fakeStudentSrv{}), http.MethodGet, "/api/v1/students?active=maybe", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestStudentHandlerGetInvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		rec := perform(studentRouter(&fakeStudentSrv{}), http.MethodGet, "/api/v1/students/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	srv := &fakeStudentSrv{err: appErrors.Clone(appErrors.ErrNotFound, "student not found")}
	rec := perform(studentRouter(srv), http.MethodGet, "/api/v1/students/7", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "student not found", envelope.Message)
}

func TestStudentHandlerCreateSetsLocation(t *testing.T) {
	rec := perform(studentRouter(&fakeStudentSrv{}), http.MethodPost, "/api/v1/students",
		`{"firstName":"Ana","lastName":"Lee","email":"ana@example.com"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/v1/students/42", rec.Header().Get("Location"))
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "ana@example.com", envelope.Data["email"])
}

func TestStudentHandlerCreateMalformedJSON(t *testing.T) {
	rec := perform(studentRouter(&fakeStudentSrv{}), http.MethodPost, "/api/v1/students", `{"firstName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerCreateConflict(t *testing.T) {
	srv := &fakeStudentSrv{err: appErrors.Clone(appErrors.ErrConflict, "email already registered")}
	rec := perform(studentRouter(srv), http.MethodPost, "/api/v1/students", `{"firstName":"Ana","lastName":"Lee","email":"ana@example.com"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStudentHandlerDeleteReturnsMessage(t *testing.T) {
	srv := &fakeStudentSrv{}
	rec := perform(studentRouter(srv), http.MethodDelete, "/api/v1/students/5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), srv.deletedID)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Equal(t, "student deleted", envelope.Message)
	assert.Nil(t, envelope.Data)
}

func TestStudentHandlerEnroll(t *testing.T) {
	srv := &fakeStudentSrv{}
	rec := perform(studentRouter(srv), http.MethodPost, "/api/v1/students/5/courses", `{"courseId":3}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), srv.lastEnroll.CourseID)
	assert.Equal(t, "/api/v1/students/5/courses/3", rec.Header().Get("Location"))
}

func TestStudentHandlerUnenrollInvalidCourse(t *testing.T) {
	rec := perform(studentRouter(&fakeStudentSrv{}), http.MethodDelete, "/api/v1/students/5/courses/x", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope.Error["details"], "courseId")
}
