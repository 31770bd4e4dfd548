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

const instructorColumns = "i.id, i.first_name, i.last_name, i.email, i.phone, i.qualification, i.years_of_experience, i.base_salary, i.salary_frequency, i.active, i.created_at, i.updated_at"

// InstructorRepository manages instructors and their course assignments.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns a page of instructors matching the filter.
func (r *InstructorRepository) List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, int, error) {
	var w where
	if filter.Qualification != nil {
		w.add("i.qualification = $%d", *filter.Qualification)
	}
	if filter.Active != nil {
		w.add("i.active = $%d", *filter.Active)
	}
	if filter.Search != "" {
		w.add("(LOWER(i.first_name) LIKE $%[1]d ESCAPE '\\' OR LOWER(i.last_name) LIKE $%[1]d ESCAPE '\\' OR LOWER(i.email) LIKE $%[1]d ESCAPE '\\')", likePattern(filter.Search))
	}
	base := "FROM instructors i " + w.String()

	query := fmt.Sprintf("SELECT %s %s ORDER BY i.last_name ASC, i.first_name ASC, i.id ASC %s", instructorColumns, base, pageClause(filter.PageRequest))
	var instructors []models.Instructor
	if err := r.db.SelectContext(ctx, &instructors, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list instructors: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count instructors: %w", err)
	}
	return instructors, total, nil
}

// Search performs a case-insensitive match on name and email.
func (r *InstructorRepository) Search(ctx context.Context, term string) ([]models.Instructor, error) {
	query := fmt.Sprintf(`SELECT %s FROM instructors i
        WHERE LOWER(i.first_name) LIKE $1 ESCAPE '\' OR LOWER(i.last_name) LIKE $1 ESCAPE '\' OR LOWER(i.email) LIKE $1 ESCAPE '\'
        ORDER BY i.id ASC LIMIT %d`, instructorColumns, searchLimit)
	var instructors []models.Instructor
	if err := r.db.SelectContext(ctx, &instructors, query, likePattern(term)); err != nil {
		return nil, fmt.Errorf("search instructors: %w", err)
	}
	return instructors, nil
}

// FindByID fetches an instructor by ID.
func (r *InstructorRepository) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := fmt.Sprintf("SELECT %s FROM instructors i WHERE i.id = $1", instructorColumns)
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, id); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// ExistsByEmail checks if an instructor email is taken, optionally excluding an ID.
func (r *InstructorRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return existsByEmail(ctx, r.db, "instructors", email, excludeID)
}

// Create inserts a new instructor.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	now := time.Now().UTC()
	instructor.CreatedAt = now
	instructor.UpdatedAt = now
	const query = `INSERT INTO instructors (first_name, last_name, email, phone, qualification, years_of_experience, base_salary, salary_frequency, active, created_at, updated_at)
        VALUES (:first_name, :last_name, :email, :phone, :qualification, :years_of_experience, :base_salary, :salary_frequency, :active, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, instructor)
	if err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	instructor.ID = id
	return nil
}

// Update modifies an existing instructor.
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	instructor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE instructors SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
        qualification = :qualification, years_of_experience = :years_of_experience, base_salary = :base_salary,
        salary_frequency = :salary_frequency, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, instructor); err != nil {
		return fmt.Errorf("update instructor: %w", translatePQ(err))
	}
	return nil
}

// Delete removes the instructor's course assignments and then the instructor, atomically.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_courses WHERE instructor_id = $1`, id); err != nil {
			return fmt.Errorf("delete instructor assignments: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM instructors WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete instructor: %w", translatePQ(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// Courses lists the courses assigned to an instructor.
func (r *InstructorRepository) Courses(ctx context.Context, instructorID int64) ([]models.InstructorCourse, error) {
	const query = `SELECT ic.id, ic.instructor_id, ic.course_id, c.name AS course_name, c.code AS course_code, ic.assigned_at
        FROM instructor_courses ic JOIN courses c ON c.id = ic.course_id
        WHERE ic.instructor_id = $1 ORDER BY ic.assigned_at ASC`
	var rows []models.InstructorCourse
	if err := r.db.SelectContext(ctx, &rows, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	return rows, nil
}

// AssignmentExists checks whether the instructor already teaches the course.
func (r *InstructorRepository) AssignmentExists(ctx context.Context, instructorID, courseID int64) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM instructor_courses WHERE instructor_id = $1 AND course_id = $2 LIMIT 1`, instructorID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check instructor assignment: %w", err)
	}
	return true, nil
}

// Assign stores a new course assignment. A concurrent duplicate yields ErrDuplicate.
func (r *InstructorRepository) Assign(ctx context.Context, assignment *models.InstructorCourse) error {
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now().UTC()
	}
	const query = `INSERT INTO instructor_courses (instructor_id, course_id, assigned_at) VALUES (:instructor_id, :course_id, :assigned_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, assignment)
	if err != nil {
		return fmt.Errorf("assign course: %w", err)
	}
	assignment.ID = id
	return nil
}

// Unassign removes a course assignment, returning sql.ErrNoRows when absent.
func (r *InstructorRepository) Unassign(ctx context.Context, instructorID, courseID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instructor_courses WHERE instructor_id = $1 AND course_id = $2`, instructorID, courseID)
	if err != nil {
		return fmt.Errorf("unassign course: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
