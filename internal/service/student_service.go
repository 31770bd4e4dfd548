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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	Search(ctx context.Context, term string) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type enrollmentRepository interface {
	Enroll(ctx context.Context, enrollment *models.Enrollment) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error)
}

type studentGradeReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error)
}

type studentPaymentReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Payment, error)
}

// StudentServiceParams groups the collaborators of StudentService.
type StudentServiceParams struct {
	Repo        studentRepository
	Enrollments enrollmentRepository
	Grades      studentGradeReader
	Payments    studentPaymentReader
	Events      EventPublisher
	Validator   *validation.Validator
	Logger      *zap.Logger
}

// StudentService handles student use-cases.
type StudentService struct {
	repo        studentRepository
	enrollments enrollmentRepository
	grades      studentGradeReader
	payments    studentPaymentReader
	events      EventPublisher
	validator   *validation.Validator
	logger      *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(params StudentServiceParams) *StudentService {
	if params.Validator == nil {
		params.Validator = validation.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &StudentService{
		repo:        params.Repo,
		enrollments: params.Enrollments,
		grades:      params.Grades,
		payments:    params.Payments,
		events:      publisherOrNop(params.Events),
		validator:   params.Validator,
		logger:      params.Logger,
	}
}

// List returns a page of students in their compact list form.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) (models.PagedResult[models.StudentListItem], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.StudentListItem]{}, appErrors.Internal(err, "failed to list students")
	}
	page := models.NewPagedResult(students, total, filter.PageRequest)
	return models.MapPaged(page, toStudentListItem), nil
}

// Search finds students whose name or email contains term.
func (s *StudentService) Search(ctx context.Context, term string) ([]models.Student, error) {
	term = strings.TrimSpace(term)
	if err := s.validator.Var("q", term, "required,max=100"); err != nil {
		return nil, err
	}
	students, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to search students")
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req models.StudentRequest) (*models.Student, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}
	student := &models.Student{Active: true}
	applyStudentRequest(student, req)
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, "create", "student")
	}
	s.logger.Info("student created", zap.Int64("student_id", student.ID))
	s.events.Publish(ctx, models.EventStudentCreated, student)
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req models.StudentRequest) (*models.Student, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	if err := s.ensureEmailFree(ctx, req.Email, id); err != nil {
		return nil, err
	}
	applyStudentRequest(student, req)
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, writeError(err, "update", "student")
	}
	return student, nil
}

// Delete removes a student together with its enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "student")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

// Enroll adds the student to a course, honouring course capacity.
func (s *StudentService) Enroll(ctx context.Context, studentID int64, req models.EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, studentID); err != nil {
		return nil, lookupError(err, "student")
	}
	enrollment := &models.Enrollment{StudentID: studentID, CourseID: req.CourseID}
	if err := s.enrollments.Enroll(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "student is already enrolled in this course")
		case errors.Is(err, repository.ErrCourseFull):
			return nil, appErrors.WithDetails(appErrors.ErrValidation, "course has reached its maximum capacity",
				map[string]string{"courseId": "course is full"})
		case errors.Is(err, repository.ErrCourseInactive):
			return nil, appErrors.Clone(appErrors.ErrValidation, "course is not active")
		}
		return nil, writeError(err, "enroll", "course")
	}
	s.logger.Info("student enrolled", zap.Int64("student_id", studentID), zap.Int64("course_id", req.CourseID))
	s.events.Publish(ctx, models.EventEnrollmentCreated, enrollment)
	return enrollment, nil
}

// Unenroll removes the student from a course.
func (s *StudentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.enrollments.Unenroll(ctx, studentID, courseID); err != nil {
		return writeError(err, "remove", "enrollment")
	}
	return nil
}

// Courses lists the courses a student is enrolled in.
func (s *StudentService) Courses(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	if _, err := s.repo.FindByID(ctx, studentID); err != nil {
		return nil, lookupError(err, "student")
	}
	rows, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student courses")
	}
	if rows == nil {
		rows = []models.EnrollmentDetail{}
	}
	return rows, nil
}

// Summary aggregates enrollments, GPA and payment totals for a student.
func (s *StudentService) Summary(ctx context.Context, studentID int64) (*models.StudentSummary, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	courses, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student courses")
	}
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student grades")
	}
	payments, err := s.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student payments")
	}

	summary := &models.StudentSummary{
		Student:    *student,
		Courses:    courses,
		GradeCount: len(grades),
		GPA:        GPA(gradeLetters(grades)),
	}
	if summary.Courses == nil {
		summary.Courses = []models.EnrollmentDetail{}
	}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentCompleted, models.PaymentPartiallyRefunded:
			summary.TotalPaid += p.Refundable()
		case models.PaymentPending:
			summary.TotalOutstanding += p.Amount
		}
	}
	summary.TotalPaid = round2(summary.TotalPaid)
	summary.TotalOutstanding = round2(summary.TotalOutstanding)
	return summary, nil
}

func (s *StudentService) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate email")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email already used")
	}
	return nil
}

func applyStudentRequest(student *models.Student, req models.StudentRequest) {
	student.FirstName = strings.TrimSpace(req.FirstName)
	student.LastName = strings.TrimSpace(req.LastName)
	student.Email = req.Email
	student.Phone = req.Phone
	student.DateOfBirth = req.DateOfBirth
	student.Active = boolOr(req.Active, student.Active)
}

func toStudentListItem(s models.Student) models.StudentListItem {
	return models.StudentListItem{ID: s.ID, FullName: s.FullName(), Email: s.Email, Active: s.Active}
}
