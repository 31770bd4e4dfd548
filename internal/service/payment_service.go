package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

const defaultCurrency = "USD"

type paymentRepository interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error)
	FindByID(ctx context.Context, id int64) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus) error
	Refund(ctx context.Context, id int64, amount float64, status models.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
	TotalsByStatus(ctx context.Context, from, to *time.Time) ([]models.PaymentStatusTotal, float64, error)
}

// PaymentGateway opens hosted checkout sessions for pending payments.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
}

// PaymentServiceParams groups the collaborators of PaymentService.
type PaymentServiceParams struct {
	Repo      paymentRepository
	Students  studentFinder
	Gateway   PaymentGateway
	Events    EventPublisher
	Validator *validation.Validator
	Logger    *zap.Logger
}

// PaymentService records payments and drives their status lifecycle.
type PaymentService struct {
	repo      paymentRepository
	students  studentFinder
	gateway   PaymentGateway
	events    EventPublisher
	validator *validation.Validator
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(params PaymentServiceParams) *PaymentService {
	if params.Validator == nil {
		params.Validator = validation.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &PaymentService{
		repo:      params.Repo,
		students:  params.Students,
		gateway:   params.Gateway,
		events:    publisherOrNop(params.Events),
		validator: params.Validator,
		logger:    params.Logger,
	}
}

// List returns a page of payments, newest first.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) (models.PagedResult[models.Payment], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	if err := validateRange(filter.From, filter.To); err != nil {
		return models.PagedResult[models.Payment]{}, err
	}
	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.Payment]{}, appErrors.Internal(err, "failed to list payments")
	}
	return models.NewPagedResult(payments, total, filter.PageRequest), nil
}

// Get returns a payment by id.
func (s *PaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "payment")
	}
	return payment, nil
}

// Create records a pending payment.
func (s *PaymentService) Create(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return nil, lookupError(err, "student")
	}
	payment := &models.Payment{Status: models.PaymentPending}
	applyPaymentRequest(payment, req)
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, writeError(err, "create", "payment")
	}
	return payment, nil
}

// Update modifies descriptive payment fields. Amount is frozen once a refund has been issued.
func (s *PaymentService) Update(ctx context.Context, id int64, req models.PaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "payment")
	}
	if req.StudentID != payment.StudentID {
		if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
			return nil, lookupError(err, "student")
		}
	}
	if payment.RefundedAmount > 0 && req.Amount != payment.Amount {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "amount cannot change after a refund",
			map[string]string{"amount": "amount is locked once refunded"})
	}
	applyPaymentRequest(payment, req)
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, writeError(err, "update", "payment")
	}
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "payment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "payment")
	}
	return nil
}

// UpdateStatus moves a payment along its lifecycle. Refund states require Refund.
func (s *PaymentService) UpdateStatus(ctx context.Context, id int64, req models.PaymentStatusRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "payment")
	}
	if req.Status.IsRefundState() {
		return nil, appErrors.WithDetails(appErrors.ErrInvalidTransition, "use the refund operation to refund a payment",
			map[string]string{"from": string(payment.Status), "to": string(req.Status)})
	}
	if !payment.Status.CanTransitionTo(req.Status) {
		return nil, invalidTransition("payment status", payment.Status, req.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, payment.Status, req.Status); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "payment status changed concurrently")
		}
		return nil, writeError(err, "update", "payment status")
	}
	s.logger.Info("payment status changed", zap.Int64("payment_id", id), zap.String("from", string(payment.Status)), zap.String("to", string(req.Status)))
	payment.Status = req.Status
	payment.UpdatedAt = time.Now().UTC()
	if payment.Status == models.PaymentCompleted {
		s.events.Publish(ctx, models.EventPaymentCompleted, payment)
	}
	return payment, nil
}

// Refund returns part or all of a completed payment.
func (s *PaymentService) Refund(ctx context.Context, id int64, req models.RefundRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "payment")
	}
	if payment.Status != models.PaymentCompleted && payment.Status != models.PaymentPartiallyRefunded {
		return nil, invalidTransition("payment status", payment.Status, models.PaymentRefunded)
	}
	refundable := round2(payment.Refundable())
	if req.Amount > refundable {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "refund exceeds the refundable amount",
			map[string]string{"amount": fmt.Sprintf("amount must not exceed %.2f", refundable)})
	}
	next := models.PaymentPartiallyRefunded
	if round2(refundable-req.Amount) == 0 {
		next = models.PaymentRefunded
	}
	if err := s.repo.Refund(ctx, id, req.Amount, next); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "payment changed concurrently")
		}
		return nil, writeError(err, "refund", "payment")
	}
	payment.RefundedAmount = round2(payment.RefundedAmount + req.Amount)
	payment.Status = next
	payment.UpdatedAt = time.Now().UTC()
	s.logger.Info("payment refunded", zap.Int64("payment_id", id), zap.Float64("amount", req.Amount), zap.String("status", string(next)))
	s.events.Publish(ctx, models.EventPaymentRefunded, payment)
	return payment, nil
}

// Summary aggregates payments over an optional period.
func (s *PaymentService) Summary(ctx context.Context, from, to *time.Time) (*models.PaymentSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	totals, refunded, err := s.repo.TotalsByStatus(ctx, from, to)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to summarise payments")
	}
	summary := SummarisePayments(totals, refunded)
	summary.From = from
	summary.To = to
	return &summary, nil
}

// Checkout opens a gateway checkout session for a pending payment.
func (s *PaymentService) Checkout(ctx context.Context, id int64, successURL, cancelURL string) (*models.CheckoutSession, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "payment")
	}
	if payment.Status != models.PaymentPending {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "only pending payments can be checked out",
			map[string]string{"status": string(payment.Status)})
	}
	if s.gateway == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "payment gateway is not configured")
	}
	req := models.CheckoutRequest{
		PaymentID:   payment.ID,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Description: fmt.Sprintf("Payment #%d", payment.ID),
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	session, err := s.gateway.CreateCheckout(ctx, req)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create checkout session")
	}
	return session, nil
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && !from.Before(*to) {
		return appErrors.WithDetails(appErrors.ErrValidation, "invalid date range", map[string]string{"from": "from must be before to"})
	}
	return nil
}

func applyPaymentRequest(payment *models.Payment, req models.PaymentRequest) {
	payment.StudentID = req.StudentID
	payment.CourseID = req.CourseID
	payment.Amount = round2(req.Amount)
	payment.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if payment.Currency == "" {
		payment.Currency = defaultCurrency
	}
	payment.Method = req.Method
	payment.Reference = req.Reference
	payment.Notes = req.Notes
	if req.PaymentDate != nil {
		payment.PaymentDate = req.PaymentDate.UTC()
	}
}
