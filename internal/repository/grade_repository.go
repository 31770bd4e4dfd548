package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const gradeDetailSelect = `SELECT g.id, g.student_id, g.course_id, g.grade, g.numeric_score, g.comments, g.grade_date, g.created_at, g.updated_at,
        COALESCE(s.first_name || ' ' || s.last_name, '') AS student_name, COALESCE(c.name, '') AS course_name
        FROM grades g
        LEFT JOIN students s ON s.id = g.student_id
        LEFT JOIN courses c ON c.id = g.course_id`

// GradeRepository persists grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns a page of grades matching the filter, newest first.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDetail, int, error) {
	var w where
	if filter.StudentID != nil {
		w.add("g.student_id = $%d", *filter.StudentID)
	}
	if filter.CourseID != nil {
		w.add("g.course_id = $%d", *filter.CourseID)
	}
	if filter.Grade != nil {
		w.add("g.grade = $%d", *filter.Grade)
	}

	query := fmt.Sprintf("%s %s ORDER BY g.id DESC %s", gradeDetailSelect, w.String(), pageClause(filter.PageRequest))
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list grades: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) FROM grades g "+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count grades: %w", err)
	}
	return grades, total, nil
}

// FindByID fetches a grade with student and course names.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*models.GradeDetail, error) {
	var grade models.GradeDetail
	if err := r.db.GetContext(ctx, &grade, gradeDetailSelect+" WHERE g.id = $1", id); err != nil {
		return nil, err
	}
	return &grade, nil
}

// ListByStudent returns every grade of a student.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error) {
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, gradeDetailSelect+" WHERE g.student_id = $1 ORDER BY g.grade_date DESC, g.id DESC", studentID); err != nil {
		return nil, fmt.Errorf("list student grades: %w", err)
	}
	return grades, nil
}

// ListByCourse returns every grade recorded for a course.
func (r *GradeRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.GradeDetail, error) {
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, gradeDetailSelect+" WHERE g.course_id = $1 ORDER BY g.grade_date DESC, g.id DESC", courseID); err != nil {
		return nil, fmt.Errorf("list course grades: %w", err)
	}
	return grades, nil
}

// Create inserts a grade.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	now := time.Now().UTC()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	if grade.GradeDate.IsZero() {
		grade.GradeDate = now
	}
	const query = `INSERT INTO grades (student_id, course_id, grade, numeric_score, comments, grade_date, created_at, updated_at)
        VALUES (:student_id, :course_id, :grade, :numeric_score, :comments, :grade_date, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, grade)
	if err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	grade.ID = id
	return nil
}

// Update modifies a grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	grade.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grades SET student_id = :student_id, course_id = :course_id, grade = :grade, numeric_score = :numeric_score,
        comments = :comments, grade_date = :grade_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return nil
}

// Delete removes a grade, returning sql.ErrNoRows when absent.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
