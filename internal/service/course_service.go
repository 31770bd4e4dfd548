package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithEnrollment, int, error)
	FindByID(ctx context.Context, id int64) (*models.CourseWithEnrollment, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	Students(ctx context.Context, courseID int64) ([]models.Student, error)
}

// CourseService manages the course catalogue.
type CourseService struct {
	repo      courseRepository
	validator *validation.Validator
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, validator *validation.Validator, logger *zap.Logger) *CourseService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validator, logger: logger}
}

// List returns a page of courses with their enrollment counts.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) (models.PagedResult[models.CourseWithEnrollment], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.CourseWithEnrollment]{}, appErrors.Internal(err, "failed to list courses")
	}
	return models.NewPagedResult(courses, total, filter.PageRequest), nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseWithEnrollment, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	return course, nil
}

// Create adds a course.
func (s *CourseService) Create(ctx context.Context, req models.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}
	course := &models.Course{Active: true}
	applyCourseRequest(course, req)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, writeError(err, "create", "course")
	}
	s.logger.Info("course created", zap.Int64("course_id", course.ID), zap.String("code", course.Code))
	return course, nil
}

// Update modifies a course. Capacity may not drop below the current enrollment.
func (s *CourseService) Update(ctx context.Context, id int64, req models.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	if err := s.ensureCodeFree(ctx, req.Code, id); err != nil {
		return nil, err
	}
	if req.MaxCapacity < existing.EnrolledCount {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "capacity below current enrollment",
			map[string]string{"maxCapacity": "maxCapacity must be at least the current enrollment count"})
	}
	course := existing.Course
	applyCourseRequest(&course, req)
	if err := s.repo.Update(ctx, &course); err != nil {
		return nil, writeError(err, "update", "course")
	}
	return &course, nil
}

// Delete removes a course with its enrollments and instructor assignments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "course")
	}
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return nil
}

// Students lists the students enrolled in a course.
func (s *CourseService) Students(ctx context.Context, id int64) ([]models.StudentListItem, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "course")
	}
	students, err := s.repo.Students(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list course students")
	}
	items := make([]models.StudentListItem, 0, len(students))
	for _, st := range students {
		items = append(items, toStudentListItem(st))
	}
	return items, nil
}

func (s *CourseService) ensureCodeFree(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.repo.ExistsByCode(ctx, strings.ToUpper(strings.TrimSpace(code)), excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate course code")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "course code already used")
	}
	return nil
}

func applyCourseRequest(course *models.Course, req models.CourseRequest) {
	course.Name = strings.TrimSpace(req.Name)
	course.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	course.Description = req.Description
	course.Level = req.Level
	course.MaxCapacity = req.MaxCapacity
	course.Fee = req.Fee
	course.Active = boolOr(req.Active, course.Active)
}
