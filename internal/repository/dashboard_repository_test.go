package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(*) FROM students) AS total_students")).
		WillReturnRows(sqlmock.NewRows([]string{"total_students", "active_students", "total_courses", "active_courses", "total_instructors", "total_enrollments", "active_capacity", "active_enrollments", "open_opportunities", "new_leads", "pending_payments"}).
			AddRow(10, 8, 4, 3, 2, 12, 60, 9, 5, 7, 150.5))

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, counts.TotalStudents)
	assert.Equal(t, 60, counts.ActiveCapacity)
	assert.InDelta(t, 150.5, counts.PendingPayments, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryPopularCoursesDefaultsLimit(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY enrolled DESC, c.name ASC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "course_name", "max_capacity", "enrolled"}).AddRow(1, "IELTS Prep", 20, 15))

	rows, err := repo.PopularCourses(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 15, rows[0].Enrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
