package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

// DashboardRepository reads the raw snapshots the dashboard aggregates in memory.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns the headline entity counts in a single round trip.
func (r *DashboardRepository) Counts(ctx context.Context) (*models.DashboardCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS total_students,
        (SELECT COUNT(*) FROM students WHERE active) AS active_students,
        (SELECT COUNT(*) FROM courses) AS total_courses,
        (SELECT COUNT(*) FROM courses WHERE active) AS active_courses,
        (SELECT COUNT(*) FROM instructors) AS total_instructors,
        (SELECT COUNT(*) FROM student_courses) AS total_enrollments,
        (SELECT COALESCE(SUM(max_capacity), 0) FROM courses WHERE active) AS active_capacity,
        (SELECT COUNT(*) FROM student_courses sc JOIN courses c ON c.id = sc.course_id WHERE c.active) AS active_enrollments,
        (SELECT COUNT(*) FROM opportunities WHERE stage NOT IN ('CLOSED_WON', 'CLOSED_LOST')) AS open_opportunities,
        (SELECT COUNT(*) FROM leads WHERE status = 'NEW') AS new_leads,
        (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'PENDING') AS pending_payments`
	var counts models.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &counts, nil
}

// GradeLetters returns every recorded letter grade.
func (r *DashboardRepository) GradeLetters(ctx context.Context) ([]models.GradeLetter, error) {
	var letters []models.GradeLetter
	if err := r.db.SelectContext(ctx, &letters, `SELECT grade FROM grades`); err != nil {
		return nil, fmt.Errorf("dashboard grades: %w", err)
	}
	return letters, nil
}

// EnrollmentsSince returns enrollment timestamps on or after from.
func (r *DashboardRepository) EnrollmentsSince(ctx context.Context, from time.Time) ([]models.DatedAmount, error) {
	var rows []models.DatedAmount
	if err := r.db.SelectContext(ctx, &rows, `SELECT enrolled_at AS at, 1 AS amount FROM student_courses WHERE enrolled_at >= $1`, from); err != nil {
		return nil, fmt.Errorf("dashboard enrollments: %w", err)
	}
	return rows, nil
}

// RevenueSince returns net settled payment amounts dated on or after from.
func (r *DashboardRepository) RevenueSince(ctx context.Context, from time.Time) ([]models.DatedAmount, error) {
	const query = `SELECT payment_date AS at, amount - refunded_amount AS amount FROM payments
        WHERE status IN ('COMPLETED', 'PARTIALLY_REFUNDED') AND payment_date >= $1`
	var rows []models.DatedAmount
	if err := r.db.SelectContext(ctx, &rows, query, from); err != nil {
		return nil, fmt.Errorf("dashboard revenue: %w", err)
	}
	return rows, nil
}

// NetRevenue returns the all-time settled revenue net of refunds.
func (r *DashboardRepository) NetRevenue(ctx context.Context) (float64, error) {
	var total float64
	const query = `SELECT COALESCE(SUM(amount - refunded_amount), 0) FROM payments WHERE status IN ('COMPLETED', 'PARTIALLY_REFUNDED')`
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("dashboard revenue total: %w", err)
	}
	return total, nil
}

// PopularCourses ranks active courses by enrollment count.
func (r *DashboardRepository) PopularCourses(ctx context.Context, limit int) ([]models.CoursePopularity, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `SELECT c.id AS course_id, c.name AS course_name, c.max_capacity, COUNT(sc.id) AS enrolled
        FROM courses c LEFT JOIN student_courses sc ON sc.course_id = c.id
        WHERE c.active GROUP BY c.id, c.name, c.max_capacity
        ORDER BY enrolled DESC, c.name ASC LIMIT $1`
	var rows []models.CoursePopularity
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("dashboard popular courses: %w", err)
	}
	return rows, nil
}
