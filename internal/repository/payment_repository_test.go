package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

func TestPaymentRepositoryUpdateStatusStale(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2")).
		WithArgs(int64(4), models.PaymentPending, models.PaymentCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 4, models.PaymentPending, models.PaymentCompleted)
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryRefund(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("refunded_amount + $2 <= amount")).
		WithArgs(int64(4), 25.0, models.PaymentPartiallyRefunded, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Refund(context.Background(), 4, 25, models.PaymentPartiallyRefunded))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryTotalsByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.status, COUNT(*) AS count, COALESCE(SUM(p.amount), 0) AS amount FROM payments p WHERE p.payment_date >= $1 GROUP BY p.status")).
		WithArgs(from).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "amount"}).
			AddRow("COMPLETED", 2, 300.0).
			AddRow("PENDING", 1, 50.0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(p.refunded_amount), 0) FROM payments p WHERE p.payment_date >= $1")).
		WithArgs(from).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20.0))

	totals, refunded, err := repo.TotalsByStatus(context.Background(), &from, nil)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, models.PaymentCompleted, totals[0].Status)
	assert.InDelta(t, 20.0, refunded, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
