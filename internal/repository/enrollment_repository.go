package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/database"
)

// EnrollmentRepository persists student to course enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll inserts an enrollment after locking the course row and checking capacity.
func (r *EnrollmentRepository) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var course struct {
			MaxCapacity int  `db:"max_capacity"`
			Active      bool `db:"active"`
		}
		if err := tx.GetContext(ctx, &course, `SELECT max_capacity, active FROM courses WHERE id = $1 FOR UPDATE`, enrollment.CourseID); err != nil {
			return err
		}
		if !course.Active {
			return ErrCourseInactive
		}

		var exists int
		err := tx.GetContext(ctx, &exists, `SELECT 1 FROM student_courses WHERE student_id = $1 AND course_id = $2`, enrollment.StudentID, enrollment.CourseID)
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check enrollment: %w", err)
		}

		enrolled, err := count(ctx, tx, `SELECT COUNT(*) FROM student_courses WHERE course_id = $1`, enrollment.CourseID)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if enrolled >= course.MaxCapacity {
			return ErrCourseFull
		}

		const query = `INSERT INTO student_courses (student_id, course_id, enrolled_at) VALUES (:student_id, :course_id, :enrolled_at) RETURNING id`
		id, err := insertReturningID(ctx, tx, query, enrollment)
		if err != nil {
			return fmt.Errorf("create enrollment: %w", err)
		}
		enrollment.ID = id
		return nil
	})
}

// Unenroll removes an enrollment, returning sql.ErrNoRows when absent.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentID, courseID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM student_courses WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByStudent returns a student's enrollments with course details.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT sc.id, sc.student_id, sc.course_id, sc.enrolled_at,
        c.name AS course_name, c.code AS course_code, c.level AS course_level
        FROM student_courses sc JOIN courses c ON c.id = sc.course_id
        WHERE sc.student_id = $1 ORDER BY sc.enrolled_at DESC`
	var rows []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return rows, nil
}
