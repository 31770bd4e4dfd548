package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) (models.PagedResult[models.StudentListItem], error)
	Search(ctx context.Context, term string) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req models.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req models.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	Enroll(ctx context.Context, studentID int64, req models.EnrollRequest) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID int64) error
	Courses(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error)
	Summary(ctx context.Context, studentID int64) (*models.StudentSummary, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name or email"
// @Param active query bool false "Filter by active state"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	active, ok := queryBool(c, "active")
	if !ok {
		return
	}
	filter := models.StudentFilter{
		PageRequest: pageRequest(c),
		Search:      strings.TrimSpace(c.Query("search")),
		Active:      active,
	}
	page, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Search godoc
// @Summary Search students by name or email
// @Tags Students
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Router /students/search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	students, err := h.students.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.StudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, student.ID, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body models.StudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student and their enrollments
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "student")
}

// Enroll godoc
// @Summary Enroll student in a course
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body models.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/courses [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	enrollment, err := h.students.Enroll(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, enrollment.CourseID, enrollment)
}

// Unenroll godoc
// @Summary Remove student from a course
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/courses/{courseId} [delete]
func (h *StudentHandler) Unenroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	if err := h.students.Unenroll(c.Request.Context(), id, courseID); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "enrollment")
}

// Courses godoc
// @Summary List courses a student is enrolled in
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/courses [get]
func (h *StudentHandler) Courses(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	courses, err := h.students.Courses(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Summary godoc
// @Summary Student academic and billing summary
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/summary [get]
func (h *StudentHandler) Summary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.students.Summary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
