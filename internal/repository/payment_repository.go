package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const paymentColumns = "p.id, p.student_id, p.course_id, p.amount, p.refunded_amount, p.currency, p.status, p.method, p.reference, p.notes, p.payment_date, p.created_at, p.updated_at"

// PaymentRepository persists payments.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func paymentWhere(filter models.PaymentFilter) *where {
	w := &where{}
	if filter.StudentID != nil {
		w.add("p.student_id = $%d", *filter.StudentID)
	}
	if filter.CourseID != nil {
		w.add("p.course_id = $%d", *filter.CourseID)
	}
	if filter.Status != nil {
		w.add("p.status = $%d", *filter.Status)
	}
	if filter.From != nil {
		w.add("p.payment_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("p.payment_date < $%d", *filter.To)
	}
	return w
}

// List returns a page of payments, newest first.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error) {
	w := paymentWhere(filter)
	base := "FROM payments p " + w.String()

	query := fmt.Sprintf("SELECT %s %s ORDER BY p.id DESC %s", paymentColumns, base, pageClause(filter.PageRequest))
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	return payments, total, nil
}

// ListByStudent returns all payments of a student.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments p WHERE p.student_id = $1 ORDER BY p.payment_date DESC, p.id DESC", paymentColumns)
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student payments: %w", err)
	}
	return payments, nil
}

// FindByID fetches a payment.
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments p WHERE p.id = $1", paymentColumns)
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create inserts a payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = now
	}
	const query = `INSERT INTO payments (student_id, course_id, amount, refunded_amount, currency, status, method, reference, notes, payment_date, created_at, updated_at)
        VALUES (:student_id, :course_id, :amount, :refunded_amount, :currency, :status, :method, :reference, :notes, :payment_date, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, payment)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	payment.ID = id
	return nil
}

// Update modifies the descriptive fields of a payment. Status and refunds have dedicated methods.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	payment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE payments SET student_id = :student_id, course_id = :course_id, amount = :amount, currency = :currency,
        method = :method, reference = :reference, notes = :notes, payment_date = :payment_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// UpdateStatus moves a payment from one status to another. ErrStaleStatus is returned if it is no longer in from.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleStatus
	}
	return nil
}

// Refund adds amount to refunded_amount and sets the resulting status, guarding against over-refunds.
func (r *PaymentRepository) Refund(ctx context.Context, id int64, amount float64, status models.PaymentStatus) error {
	const query = `UPDATE payments SET refunded_amount = refunded_amount + $2, status = $3, updated_at = $4
        WHERE id = $1 AND status IN ('COMPLETED', 'PARTIALLY_REFUNDED') AND refunded_amount + $2 <= amount`
	res, err := r.db.ExecContext(ctx, query, id, amount, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("refund payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleStatus
	}
	return nil
}

// Delete removes a payment, returning sql.ErrNoRows when absent.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TotalsByStatus sums payments per status within an optional date range.
func (r *PaymentRepository) TotalsByStatus(ctx context.Context, from, to *time.Time) ([]models.PaymentStatusTotal, float64, error) {
	w := paymentWhere(models.PaymentFilter{From: from, To: to})
	query := fmt.Sprintf("SELECT p.status, COUNT(*) AS count, COALESCE(SUM(p.amount), 0) AS amount FROM payments p %s GROUP BY p.status ORDER BY p.status", w.String())
	var totals []models.PaymentStatusTotal
	if err := r.db.SelectContext(ctx, &totals, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("sum payments by status: %w", err)
	}
	var refunded float64
	if err := r.db.GetContext(ctx, &refunded, "SELECT COALESCE(SUM(p.refunded_amount), 0) FROM payments p "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("sum refunds: %w", err)
	}
	return totals, refunded, nil
}
