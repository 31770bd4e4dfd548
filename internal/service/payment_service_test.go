package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type fakePaymentRepo struct {
	payments map[int64]*models.Payment
	nextID   int64
	stale    bool
	totals   []models.PaymentStatusTotal
	refunded float64
}

func newFakePaymentRepo(payments ...models.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: map[int64]*models.Payment{}}
	for i := range payments {
		p := payments[i]
		repo.payments[p.ID] = &p
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
	}
	return repo
}

func (r *fakePaymentRepo) List(context.Context, models.PaymentFilter) ([]models.Payment, int, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id int64) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	r.nextID++
	payment.ID = r.nextID
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, from, to models.PaymentStatus) error {
	p := r.payments[id]
	if r.stale || p.Status != from {
		return repository.ErrStaleStatus
	}
	p.Status = to
	return nil
}

func (r *fakePaymentRepo) Refund(_ context.Context, id int64, amount float64, status models.PaymentStatus) error {
	if r.stale {
		return repository.ErrStaleStatus
	}
	p := r.payments[id]
	p.RefundedAmount += amount
	p.Status = status
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id int64) error {
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) TotalsByStatus(context.Context, *time.Time, *time.Time) ([]models.PaymentStatusTotal, float64, error) {
	return r.totals, r.refunded, nil
}

func newPaymentFixture(payments ...models.Payment) (*PaymentService, *fakePaymentRepo, *recordingPublisher) {
	repo := newFakePaymentRepo(payments...)
	events := &recordingPublisher{}
	svc := NewPaymentService(PaymentServiceParams{
		Repo:     repo,
		Students: newFakeStudentRepo(models.Student{ID: 1, FirstName: "Ana", Email: "ana@example.com"}),
		Gateway:  NewSandboxGateway("", time.Hour),
		Events:   events,
		Logger:   zap.NewNop(),
	})
	return svc, repo, events
}

func TestPaymentServiceCreateDefaults(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	payment, err := svc.Create(context.Background(), models.PaymentRequest{StudentID: 1, Amount: 99.999, Method: models.PaymentMethodCash})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, "USD", payment.Currency)
	assert.InDelta(t, 100.0, payment.Amount, 0.0001)
}

func TestPaymentServiceCreateUnknownStudent(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	_, err := svc.Create(context.Background(), models.PaymentRequest{StudentID: 9, Amount: 10, Method: models.PaymentMethodCard})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceUpdateStatusTransitions(t *testing.T) {
	svc, repo, events := newPaymentFixture(models.Payment{ID: 1, StudentID: 1, Amount: 100, Status: models.PaymentPending})

	payment, err := svc.UpdateStatus(context.Background(), 1, models.PaymentStatusRequest{Status: models.PaymentCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.Equal(t, models.PaymentCompleted, repo.payments[1].Status)
	require.Len(t, events.events, 1)
	assert.Equal(t, models.EventPaymentCompleted, events.events[0].name)

	_, err = svc.UpdateStatus(context.Background(), 1, models.PaymentStatusRequest{Status: models.PaymentPending})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "COMPLETED", appErr.Details["from"])
	assert.Equal(t, "PENDING", appErr.Details["to"])
}

func TestPaymentServiceUpdateStatusRejectsRefundStates(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.Payment{ID: 1, StudentID: 1, Amount: 100, Status: models.PaymentCompleted})

	_, err := svc.UpdateStatus(context.Background(), 1, models.PaymentStatusRequest{Status: models.PaymentRefunded})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "refund operation")
}

func TestPaymentServiceUpdateStatusStale(t *testing.T) {
	svc, repo, events := newPaymentFixture(models.Payment{ID: 1, StudentID: 1, Amount: 100, Status: models.PaymentPending})
	repo.stale = true

	_, err := svc.UpdateStatus(context.Background(), 1, models.PaymentStatusRequest{Status: models.PaymentCancelled})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, events.events)
}

func TestPaymentServiceRefundPartialThenFull(t *testing.T) {
	svc, repo, events := newPaymentFixture(models.Payment{ID: 1, StudentID: 1, Amount: 100, Status: models.PaymentCompleted})

	payment, err := svc.Refund(context.Background(), 1, models.RefundRequest{Amount: 40})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartiallyRefunded, payment.Status)
	assert.InDelta(t, 40, payment.RefundedAmount, 0.001)

	_, err = svc.Refund(context.Background(), 1, models.RefundRequest{Amount: 60.01})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "amount")

	payment, err = svc.Refund(context.Background(), 1, models.RefundRequest{Amount: 60})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, payment.Status)
	assert.Equal(t, models.PaymentRefunded, repo.payments[1].Status)
	assert.Len(t, events.events, 2)

	_, err = svc.Refund(context.Background(), 1, models.RefundRequest{Amount: 1})
	require.Error(t, err)
}

func TestPaymentServiceRefundRequiresCompleted(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.Payment{ID: 1, StudentID: 1, Amount: 100, Status: models.PaymentPending})

	_, err := svc.Refund(context.Background(), 1, models.RefundRequest{Amount: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceUpdateLocksAmountAfterRefund(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.Payment{ID: 1, StudentID: 1, Amount: 100, RefundedAmount: 20, Status: models.PaymentPartiallyRefunded})

	_, err := svc.Update(context.Background(), 1, models.PaymentRequest{StudentID: 1, Amount: 120, Method: models.PaymentMethodCash})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "amount")

	payment, err := svc.Update(context.Background(), 1, models.PaymentRequest{StudentID: 1, Amount: 100, Method: models.PaymentMethodBankTransfer})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodBankTransfer, payment.Method)
}

func TestPaymentServiceSummary(t *testing.T) {
	svc, repo, _ := newPaymentFixture()
	repo.totals = []models.PaymentStatusTotal{
		{Status: models.PaymentCompleted, Count: 2, Amount: 300},
		{Status: models.PaymentRefunded, Count: 1, Amount: 50},
		{Status: models.PaymentPending, Count: 1, Amount: 75},
	}
	repo.refunded = 50

	summary, err := svc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalCount)
	assert.InDelta(t, 350, summary.GrossRevenue, 0.001)
	assert.InDelta(t, 300, summary.NetRevenue, 0.001)
	assert.InDelta(t, 75, summary.Pending, 0.001)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	_, err = svc.Summary(context.Background(), &from, &to)
	require.Error(t, err)
}

func TestPaymentServiceCheckout(t *testing.T) {
	svc, _, _ := newPaymentFixture(
		models.Payment{ID: 1, StudentID: 1, Amount: 100, Currency: "USD", Status: models.PaymentPending},
		models.Payment{ID: 2, StudentID: 1, Amount: 100, Currency: "USD", Status: models.PaymentCompleted},
	)

	session, err := svc.Checkout(context.Background(), 1, "https://center.example.com/ok", "")
	require.NoError(t, err)
	assert.Equal(t, "sandbox", session.Provider)

	_, err = svc.Checkout(context.Background(), 2, "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
