package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type fakeCourseRepo struct {
	courses  map[int64]*models.CourseWithEnrollment
	students map[int64][]models.Student
	nextID   int64
	deleted  []int64
}

func newFakeCourseRepo(courses ...models.CourseWithEnrollment) *fakeCourseRepo {
	repo := &fakeCourseRepo{courses: map[int64]*models.CourseWithEnrollment{}, students: map[int64][]models.Student{}}
	for i := range courses {
		c := courses[i]
		repo.courses[c.ID] = &c
		if c.ID > repo.nextID {
			repo.nextID = c.ID
		}
	}
	return repo
}

func (r *fakeCourseRepo) List(context.Context, models.CourseFilter) ([]models.CourseWithEnrollment, int, error) {
	out := make([]models.CourseWithEnrollment, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id int64) (*models.CourseWithEnrollment, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCourseRepo) ExistsByCode(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, c := range r.courses {
		if c.Code == code && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.nextID++
	course.ID = r.nextID
	r.courses[course.ID] = &models.CourseWithEnrollment{Course: *course}
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	existing, ok := r.courses[course.ID]
	if !ok {
		return sql.ErrNoRows
	}
	existing.Course = *course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) Students(_ context.Context, courseID int64) ([]models.Student, error) {
	return r.students[courseID], nil
}

func courseRequest(code string, capacity int) models.CourseRequest {
	return models.CourseRequest{Name: "General English", Code: code, Level: models.CourseLevelBeginner, MaxCapacity: capacity, Fee: 150}
}

func TestCourseServiceCreateNormalisesCode(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, nil, nil)

	course, err := svc.Create(context.Background(), courseRequest("  ge-101 ", 20))
	require.NoError(t, err)
	assert.Equal(t, "GE-101", course.Code)
	assert.True(t, course.Active)
	assert.Equal(t, int64(1), course.ID)
}

func TestCourseServiceCreateRejectsDuplicateCode(t *testing.T) {
	repo := newFakeCourseRepo(models.CourseWithEnrollment{Course: models.Course{ID: 3, Code: "GE-101"}})
	svc := NewCourseService(repo, nil, nil)

	_, err := svc.Create(context.Background(), courseRequest("ge-101", 20))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceCreateValidation(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), nil, nil)

	req := courseRequest("GE-101", 0)
	req.Level = "EXPERT"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "maxCapacity")
	assert.Contains(t, appErr.Details, "level")
}

func TestCourseServiceUpdateKeepsCapacityAboveEnrollment(t *testing.T) {
	repo := newFakeCourseRepo(models.CourseWithEnrollment{
		Course:        models.Course{ID: 1, Code: "GE-101", MaxCapacity: 20, Active: true},
		EnrolledCount: 12,
	})
	svc := NewCourseService(repo, nil, nil)

	_, err := svc.Update(context.Background(), 1, courseRequest("GE-101", 10))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "maxCapacity")

	updated, err := svc.Update(context.Background(), 1, courseRequest("GE-101", 12))
	require.NoError(t, err)
	assert.Equal(t, 12, updated.MaxCapacity)
	assert.True(t, updated.Active)
}

func TestCourseServiceDeleteAndStudents(t *testing.T) {
	repo := newFakeCourseRepo(models.CourseWithEnrollment{Course: models.Course{ID: 1, Code: "GE-101"}})
	repo.students[1] = []models.Student{{ID: 9, FirstName: "Ana", LastName: "Lima", Email: "ana@example.com"}}
	svc := NewCourseService(repo, nil, nil)

	students, err := svc.Students(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, int64(9), students[0].ID)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	err = svc.Delete(context.Background(), 1)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
