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

const courseColumns = "c.id, c.name, c.code, c.description, c.level, c.max_capacity, c.fee, c.active, c.created_at, c.updated_at"

// CourseRepository manages persistence for courses and their enrollments.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns a page of courses with their enrollment counts.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseWithEnrollment, int, error) {
	var w where
	if filter.Level != nil {
		w.add("c.level = $%d", *filter.Level)
	}
	if filter.Active != nil {
		w.add("c.active = $%d", *filter.Active)
	}
	if filter.Search != "" {
		w.add("(LOWER(c.name) LIKE $%[1]d ESCAPE '\\' OR LOWER(c.code) LIKE $%[1]d ESCAPE '\\')", likePattern(filter.Search))
	}
	base := "FROM courses c " + w.String()

	query := fmt.Sprintf(`SELECT %s,
        (SELECT COUNT(*) FROM student_courses sc WHERE sc.course_id = c.id) AS enrolled_count
        %s ORDER BY c.name ASC, c.id ASC %s`, courseColumns, base, pageClause(filter.PageRequest))
	var courses []models.CourseWithEnrollment
	if err := r.db.SelectContext(ctx, &courses, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID fetches a course with its enrollment count.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.CourseWithEnrollment, error) {
	query := fmt.Sprintf(`SELECT %s,
        (SELECT COUNT(*) FROM student_courses sc WHERE sc.course_id = c.id) AS enrolled_count
        FROM courses c WHERE c.id = $1`, courseColumns)
	var course models.CourseWithEnrollment
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ExistsByCode checks whether a course code is taken, optionally excluding an ID.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM courses WHERE UPPER(code) = UPPER($1)"
	args := []interface{}{code}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (name, code, description, level, max_capacity, fee, active, created_at, updated_at)
        VALUES (:name, :code, :description, :level, :max_capacity, :fee, :active, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, course)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	course.ID = id
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, code = :code, description = :description, level = :level,
        max_capacity = :max_capacity, fee = :fee, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", translatePQ(err))
	}
	return nil
}

// Delete removes a course after its instructor assignments and enrollments, atomically.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_courses WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("delete course assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM student_courses WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("delete course enrollments: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete course: %w", translatePQ(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// Students lists the students enrolled in a course.
func (r *CourseRepository) Students(ctx context.Context, courseID int64) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s
        JOIN student_courses sc ON sc.student_id = s.id
        WHERE sc.course_id = $1 ORDER BY s.last_name ASC, s.first_name ASC`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}
