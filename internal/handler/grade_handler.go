package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type gradeService interface {
	List(ctx context.Context, filter models.GradeFilter) (models.PagedResult[models.GradeDetail], error)
	Get(ctx context.Context, id int64) (*models.GradeDetail, error)
	Create(ctx context.Context, req models.GradeRequest) (*models.GradeDetail, error)
	Update(ctx context.Context, id int64, req models.GradeRequest) (*models.GradeDetail, error)
	Delete(ctx context.Context, id int64) error
	ByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error)
	StudentGPA(ctx context.Context, studentID int64) (*models.StudentGPA, error)
	CourseStatistics(ctx context.Context, courseID int64) (*models.CourseGradeStats, error)
}

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	grades gradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades gradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Param studentId query int false "Student ID"
// @Param courseId query int false "Course ID"
// @Param grade query string false "Letter grade"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	studentID, ok := queryInt64(c, "studentId")
	if !ok {
		return
	}
	courseID, ok := queryInt64(c, "courseId")
	if !ok {
		return
	}
	letter, ok := queryEnum(c, "grade", models.GradeLetter.Valid)
	if !ok {
		return
	}
	page, err := h.grades.List(c.Request.Context(), models.GradeFilter{
		PageRequest: pageRequest(c),
		StudentID:   studentID,
		CourseID:    courseID,
		Grade:       letter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Get godoc
// @Summary Get grade
// @Tags Grades
// @Produce json
// @Param id path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [get]
func (h *GradeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	grade, err := h.grades.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// Create godoc
// @Summary Record a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body models.GradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req models.GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.grades.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, grade.ID, grade)
}

// Update godoc
// @Summary Update a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path int true "Grade ID"
// @Param payload body models.GradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.grades.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// Delete godoc
// @Summary Delete a grade
// @Tags Grades
// @Produce json
// @Param id path int true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.grades.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "grade")
}

// ByStudent godoc
// @Summary List all grades of a student
// @Tags Grades
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /grades/student/{studentId} [get]
func (h *GradeHandler) ByStudent(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	grades, err := h.grades.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// StudentGPA godoc
// @Summary Compute a student's GPA
// @Tags Grades
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /grades/student/{studentId}/gpa [get]
func (h *GradeHandler) StudentGPA(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	gpa, err := h.grades.StudentGPA(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gpa)
}

// CourseStatistics godoc
// @Summary Grade statistics for a course
// @Tags Grades
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /grades/course/{courseId}/statistics [get]
func (h *GradeHandler) CourseStatistics(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	stats, err := h.grades.CourseStatistics(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
