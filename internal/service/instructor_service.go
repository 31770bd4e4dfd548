package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

type instructorRepository interface {
	List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, int, error)
	Search(ctx context.Context, term string) ([]models.Instructor, error)
	FindByID(ctx context.Context, id int64) (*models.Instructor, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id int64) error
	Courses(ctx context.Context, instructorID int64) ([]models.InstructorCourse, error)
	AssignmentExists(ctx context.Context, instructorID, courseID int64) (bool, error)
	Assign(ctx context.Context, assignment *models.InstructorCourse) error
	Unassign(ctx context.Context, instructorID, courseID int64) error
}

// InstructorService manages instructors and their course assignments.
type InstructorService struct {
	repo      instructorRepository
	courses   courseFinder
	validator *validation.Validator
	logger    *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, courses courseFinder, validator *validation.Validator, logger *zap.Logger) *InstructorService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, courses: courses, validator: validator, logger: logger}
}

// List returns a page of instructors.
func (s *InstructorService) List(ctx context.Context, filter models.InstructorFilter) (models.PagedResult[models.Instructor], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	instructors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.Instructor]{}, appErrors.Internal(err, "failed to list instructors")
	}
	return models.NewPagedResult(instructors, total, filter.PageRequest), nil
}

// Search finds instructors whose name or email contains term.
func (s *InstructorService) Search(ctx context.Context, term string) ([]models.Instructor, error) {
	term = strings.TrimSpace(term)
	if err := s.validator.Var("q", term, "required,max=100"); err != nil {
		return nil, err
	}
	instructors, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to search instructors")
	}
	if instructors == nil {
		instructors = []models.Instructor{}
	}
	return instructors, nil
}

// Get returns an instructor with annualised salary and assigned courses.
func (s *InstructorService) Get(ctx context.Context, id int64) (*models.InstructorDetail, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "instructor")
	}
	courses, err := s.repo.Courses(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list instructor courses")
	}
	if courses == nil {
		courses = []models.InstructorCourse{}
	}
	return &models.InstructorDetail{Instructor: *instructor, AnnualSalary: round2(instructor.AnnualSalary()), Courses: courses}, nil
}

// Create adds an instructor.
func (s *InstructorService) Create(ctx context.Context, req models.InstructorRequest) (*models.Instructor, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}
	instructor := &models.Instructor{Active: true}
	applyInstructorRequest(instructor, req)
	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, writeError(err, "create", "instructor")
	}
	return instructor, nil
}

// Update modifies an instructor.
func (s *InstructorService) Update(ctx context.Context, id int64, req models.InstructorRequest) (*models.Instructor, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "instructor")
	}
	if err := s.ensureEmailFree(ctx, req.Email, id); err != nil {
		return nil, err
	}
	applyInstructorRequest(instructor, req)
	if err := s.repo.Update(ctx, instructor); err != nil {
		return nil, writeError(err, "update", "instructor")
	}
	return instructor, nil
}

// Delete removes an instructor and its course assignments.
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "instructor")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "instructor")
	}
	s.logger.Info("instructor deleted", zap.Int64("instructor_id", id))
	return nil
}

// AssignCourse links a course to an instructor. Assigning twice is a validation error.
func (s *InstructorService) AssignCourse(ctx context.Context, instructorID int64, req models.AssignCourseRequest) (*models.InstructorCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, instructorID); err != nil {
		return nil, lookupError(err, "instructor")
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	exists, err := s.repo.AssignmentExists(ctx, instructorID, req.CourseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check assignment")
	}
	if exists {
		return nil, errAlreadyAssigned()
	}
	assignment := &models.InstructorCourse{InstructorID: instructorID, CourseID: req.CourseID, CourseName: course.Name, CourseCode: course.Code}
	if err := s.repo.Assign(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errAlreadyAssigned()
		}
		return nil, writeError(err, "assign", "course")
	}
	return assignment, nil
}

func errAlreadyAssigned() error {
	return appErrors.WithDetails(appErrors.ErrValidation, "instructor is already assigned to this course",
		map[string]string{"courseId": "courseId is already assigned"})
}

// UnassignCourse removes a course assignment.
func (s *InstructorService) UnassignCourse(ctx context.Context, instructorID, courseID int64) error {
	if err := s.repo.Unassign(ctx, instructorID, courseID); err != nil {
		return writeError(err, "remove", "course assignment")
	}
	return nil
}

func (s *InstructorService) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate email")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email already used")
	}
	return nil
}

func applyInstructorRequest(instructor *models.Instructor, req models.InstructorRequest) {
	instructor.FirstName = strings.TrimSpace(req.FirstName)
	instructor.LastName = strings.TrimSpace(req.LastName)
	instructor.Email = req.Email
	instructor.Phone = req.Phone
	instructor.Qualification = req.Qualification
	instructor.YearsOfExperience = req.YearsOfExperience
	instructor.BaseSalary = req.BaseSalary
	instructor.SalaryFrequency = req.SalaryFrequency
	instructor.Active = boolOr(req.Active, instructor.Active)
}
