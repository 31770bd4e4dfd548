package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

type gradeRepository interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.GradeDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.GradeDetail, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

type studentFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type courseFinder interface {
	FindByID(ctx context.Context, id int64) (*models.CourseWithEnrollment, error)
}

// GradeService records grades and computes GPA and course statistics.
type GradeService struct {
	repo      gradeRepository
	students  studentFinder
	courses   courseFinder
	validator *validation.Validator
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(repo gradeRepository, students studentFinder, courses courseFinder, validator *validation.Validator, logger *zap.Logger) *GradeService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, students: students, courses: courses, validator: validator, logger: logger}
}

// List returns a page of grades, newest first.
func (s *GradeService) List(ctx context.Context, filter models.GradeFilter) (models.PagedResult[models.GradeDetail], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	grades, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.GradeDetail]{}, appErrors.Internal(err, "failed to list grades")
	}
	return models.NewPagedResult(grades, total, filter.PageRequest), nil
}

// Get returns a grade by id.
func (s *GradeService) Get(ctx context.Context, id int64) (*models.GradeDetail, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "grade")
	}
	return grade, nil
}

// Create records a new grade.
func (s *GradeService) Create(ctx context.Context, req models.GradeRequest) (*models.GradeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}
	grade := &models.Grade{}
	applyGradeRequest(grade, req)
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, writeError(err, "create", "grade")
	}
	return s.Get(ctx, grade.ID)
}

// Update modifies an existing grade.
func (s *GradeService) Update(ctx context.Context, id int64, req models.GradeRequest) (*models.GradeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "grade")
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}
	grade := existing.Grade
	applyGradeRequest(&grade, req)
	if err := s.repo.Update(ctx, &grade); err != nil {
		return nil, writeError(err, "update", "grade")
	}
	return s.Get(ctx, id)
}

// Delete removes a grade.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "grade")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "grade")
	}
	return nil
}

// ByStudent lists every grade of a student.
func (s *GradeService) ByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, lookupError(err, "student")
	}
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student grades")
	}
	if grades == nil {
		grades = []models.GradeDetail{}
	}
	return grades, nil
}

// StudentGPA computes the grade point average of a student.
func (s *GradeService) StudentGPA(ctx context.Context, studentID int64) (*models.StudentGPA, error) {
	grades, err := s.ByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &models.StudentGPA{StudentID: studentID, GPA: GPA(gradeLetters(grades)), GradeCount: len(grades)}, nil
}

// CourseStatistics summarises the grades of a course.
func (s *GradeService) CourseStatistics(ctx context.Context, courseID int64) (*models.CourseGradeStats, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, lookupError(err, "course")
	}
	grades, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list course grades")
	}
	stats := CourseStats(courseID, grades)
	return &stats, nil
}

func (s *GradeService) ensureReferences(ctx context.Context, req models.GradeRequest) error {
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return lookupError(err, "student")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		return lookupError(err, "course")
	}
	return nil
}

func applyGradeRequest(grade *models.Grade, req models.GradeRequest) {
	grade.StudentID = req.StudentID
	grade.CourseID = req.CourseID
	grade.Grade = req.Grade
	grade.NumericScore = req.NumericScore
	grade.Comments = req.Comments
	switch {
	case req.GradeDate != nil:
		grade.GradeDate = req.GradeDate.UTC()
	case grade.GradeDate.IsZero():
		grade.GradeDate = time.Now().UTC()
	}
}
