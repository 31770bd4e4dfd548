package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type instructorService interface {
	List(ctx context.Context, filter models.InstructorFilter) (models.PagedResult[models.Instructor], error)
	Search(ctx context.Context, term string) ([]models.Instructor, error)
	Get(ctx context.Context, id int64) (*models.InstructorDetail, error)
	Create(ctx context.Context, req models.InstructorRequest) (*models.Instructor, error)
	Update(ctx context.Context, id int64, req models.InstructorRequest) (*models.Instructor, error)
	Delete(ctx context.Context, id int64) error
	AssignCourse(ctx context.Context, instructorID int64, req models.AssignCourseRequest) (*models.InstructorCourse, error)
	UnassignCourse(ctx context.Context, instructorID, courseID int64) error
}

// InstructorHandler exposes instructor endpoints.
type InstructorHandler struct {
	instructors instructorService
}

// NewInstructorHandler constructs InstructorHandler.
func NewInstructorHandler(instructors instructorService) *InstructorHandler {
	return &InstructorHandler{instructors: instructors}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Param search query string false "Search by name or email"
// @Param qualification query string false "Qualification"
// @Param active query bool false "Filter by active state"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	qualification, ok := queryEnum(c, "qualification", models.Qualification.Valid)
	if !ok {
		return
	}
	active, ok := queryBool(c, "active")
	if !ok {
		return
	}
	page, err := h.instructors.List(c.Request.Context(), models.InstructorFilter{
		PageRequest:   pageRequest(c),
		Search:        strings.TrimSpace(c.Query("search")),
		Qualification: qualification,
		Active:        active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Search godoc
// @Summary Search instructors by name or email
// @Tags Instructors
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Router /instructors/search [get]
func (h *InstructorHandler) Search(c *gin.Context) {
	instructors, err := h.instructors.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// Get godoc
// @Summary Get instructor with assigned courses
// @Tags Instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	instructor, err := h.instructors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}

// Create godoc
// @Summary Create instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param payload body models.InstructorRequest true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Router /instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	var req models.InstructorRequest
	if !bindJSON(c, &req) {
		return
	}
	instructor, err := h.instructors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, instructor.ID, instructor)
}

// Update godoc
// @Summary Update instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param id path int true "Instructor ID"
// @Param payload body models.InstructorRequest true "Instructor payload"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [put]
func (h *InstructorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.InstructorRequest
	if !bindJSON(c, &req) {
		return
	}
	instructor, err := h.instructors.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}

// Delete godoc
// @Summary Delete instructor and their course assignments
// @Tags Instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [delete]
func (h *InstructorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.instructors.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "instructor")
}

// AssignCourse godoc
// @Summary Assign a course to an instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param id path int true "Instructor ID"
// @Param payload body models.AssignCourseRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /instructors/{id}/courses [post]
func (h *InstructorHandler) AssignCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.AssignCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.instructors.AssignCourse(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, assignment.CourseID, assignment)
}

// UnassignCourse godoc
// @Summary Remove a course assignment
// @Tags Instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/courses/{courseId} [delete]
func (h *InstructorHandler) UnassignCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	if err := h.instructors.UnassignCourse(c.Request.Context(), id, courseID); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "assignment")
}
