package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const reportJobColumns = "id, type, format, status, run_at, file_path, result_url, error_message, created_by, created_at, finished_at"

// ReportRepository persists report jobs and reads the datasets reports are built from.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report job row with generated defaults.
func (r *ReportRepository) Create(ctx context.Context, job *models.ReportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ReportStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.RunAt.IsZero() {
		job.RunAt = job.CreatedAt
	}
	const query = `INSERT INTO report_jobs (id, type, format, status, run_at, file_path, result_url, error_message, created_by, created_at, finished_at)
VALUES (:id, :type, :format, :status, :run_at, :file_path, :result_url, :error_message, :created_by, :created_at, :finished_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create report job: %w", err)
	}
	return nil
}

// GetByID returns a job row by its identifier.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.ReportJob, error) {
	var job models.ReportJob
	if err := r.db.GetContext(ctx, &job, "SELECT "+reportJobColumns+" FROM report_jobs WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateReportJobParams defines the mutable fields.
type UpdateReportJobParams struct {
	Status       *models.ReportStatus
	FilePath     *string
	ResultURL    *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// Update persists the provided changes for a job row.
func (r *ReportRepository) Update(ctx context.Context, id string, params UpdateReportJobParams) error {
	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.FilePath != nil {
		add("file_path", *params.FilePath)
	}
	if params.ResultURL != nil {
		add("result_url", *params.ResultURL)
	}
	if params.ErrorMessage != nil {
		add("error_message", *params.ErrorMessage)
	}
	if params.FinishedAt != nil {
		add("finished_at", *params.FinishedAt)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE report_jobs SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update report job: %w", err)
	}
	return nil
}

// ClaimDue moves scheduled jobs whose run_at has passed to QUEUED and returns them.
func (r *ReportRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]models.ReportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `UPDATE report_jobs SET status = 'QUEUED'
WHERE id IN (SELECT id FROM report_jobs WHERE status = 'SCHEDULED' AND run_at <= $1 ORDER BY run_at ASC LIMIT $2 FOR UPDATE SKIP LOCKED)
RETURNING ` + reportJobColumns
	var jobs []models.ReportJob
	if err := r.db.SelectContext(ctx, &jobs, query, now, limit); err != nil {
		return nil, fmt.Errorf("claim due report jobs: %w", err)
	}
	return jobs, nil
}

// ListQueued fetches queued jobs (used for cold start recovery).
func (r *ReportRepository) ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	var jobs []models.ReportJob
	query := "SELECT " + reportJobColumns + " FROM report_jobs WHERE status IN ('QUEUED', 'PROCESSING') ORDER BY created_at ASC LIMIT $1"
	if err := r.db.SelectContext(ctx, &jobs, query, limit); err != nil {
		return nil, fmt.Errorf("list queued report jobs: %w", err)
	}
	return jobs, nil
}

// StudentRows reads every student for export.
func (r *ReportRepository) StudentRows(ctx context.Context) ([]models.Student, error) {
	var rows []models.Student
	query := fmt.Sprintf("SELECT %s FROM students s ORDER BY s.id ASC", studentColumns)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("export students: %w", err)
	}
	return rows, nil
}

// PaymentRows reads every payment for export.
func (r *ReportRepository) PaymentRows(ctx context.Context) ([]models.Payment, error) {
	var rows []models.Payment
	query := fmt.Sprintf("SELECT %s FROM payments p ORDER BY p.payment_date ASC, p.id ASC", paymentColumns)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("export payments: %w", err)
	}
	return rows, nil
}

// GradeRows reads every grade with student and course names for export.
func (r *ReportRepository) GradeRows(ctx context.Context) ([]models.GradeDetail, error) {
	var rows []models.GradeDetail
	if err := r.db.SelectContext(ctx, &rows, gradeDetailSelect+" ORDER BY g.id ASC"); err != nil {
		return nil, fmt.Errorf("export grades: %w", err)
	}
	return rows, nil
}

// EnrollmentRow is one student to course enrollment with names, for export.
type EnrollmentRow struct {
	StudentID   int64     `db:"student_id"`
	StudentName string    `db:"student_name"`
	Email       string    `db:"email"`
	CourseCode  string    `db:"course_code"`
	CourseName  string    `db:"course_name"`
	EnrolledAt  time.Time `db:"enrolled_at"`
}

// EnrollmentRows reads every enrollment for export.
func (r *ReportRepository) EnrollmentRows(ctx context.Context) ([]EnrollmentRow, error) {
	const query = `SELECT s.id AS student_id, s.first_name || ' ' || s.last_name AS student_name, s.email,
        c.code AS course_code, c.name AS course_name, sc.enrolled_at
        FROM student_courses sc
        JOIN students s ON s.id = sc.student_id
        JOIN courses c ON c.id = sc.course_id
        ORDER BY sc.enrolled_at ASC, sc.id ASC`
	var rows []EnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("export enrollments: %w", err)
	}
	return rows, nil
}
