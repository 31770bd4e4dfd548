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

const studentColumns = "s.id, s.first_name, s.last_name, s.email, s.phone, s.date_of_birth, s.active, s.created_at, s.updated_at"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns a page of students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	var w where
	if filter.Active != nil {
		w.add("s.active = $%d", *filter.Active)
	}
	if filter.Search != "" {
		w.add("(LOWER(s.first_name) LIKE $%[1]d ESCAPE '\\' OR LOWER(s.last_name) LIKE $%[1]d ESCAPE '\\' OR LOWER(s.email) LIKE $%[1]d ESCAPE '\\')", likePattern(filter.Search))
	}
	base := "FROM students s " + w.String()

	query := fmt.Sprintf("SELECT %s %s ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC %s", studentColumns, base, pageClause(filter.PageRequest))
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// Search performs a case-insensitive match on name and email.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s
        WHERE LOWER(s.first_name) LIKE $1 ESCAPE '\' OR LOWER(s.last_name) LIKE $1 ESCAPE '\' OR LOWER(s.email) LIKE $1 ESCAPE '\'
        ORDER BY s.id ASC LIMIT %d`, studentColumns, searchLimit)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, likePattern(term)); err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students s WHERE s.id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmail checks if a student with the email exists, optionally excluding an ID.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return existsByEmail(ctx, r.db, "students", email, excludeID)
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return createStudent(ctx, r.db, student)
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
        date_of_birth = :date_of_birth, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", translatePQ(err))
	}
	return nil
}

// Delete removes a student and its enrollments in one transaction. Grades and payments keep their reference.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM student_courses WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("delete student enrollments: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete student: %w", translatePQ(err))
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

func createStudent(ctx context.Context, q sqlx.ExtContext, student *models.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (first_name, last_name, email, phone, date_of_birth, active, created_at, updated_at)
        VALUES (:first_name, :last_name, :email, :phone, :date_of_birth, :active, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, q, query, student)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	student.ID = id
	return nil
}

func existsByEmail(ctx context.Context, q sqlx.QueryerContext, table, email string, excludeID int64) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE LOWER(email) = LOWER($1)", table)
	args := []interface{}{email}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := sqlx.GetContext(ctx, q, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check %s email: %w", table, err)
	}
	return true, nil
}
