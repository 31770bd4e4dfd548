package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

type fakePaymentSrv struct {
	lastFilter  models.PaymentFilter
	lastRefund  models.RefundRequest
	successURL  string
	summaryFrom *time.Time
	err         error
}

func (f *fakePaymentSrv) List(_ context.Context, filter models.PaymentFilter) (models.PagedResult[models.Payment], error) {
	f.lastFilter = filter
	return models.NewPagedResult[models.Payment](nil, 0, filter.PageRequest), f.err
}

func (f *fakePaymentSrv) Get(_ context.Context, id int64) (*models.Payment, error) {
	return &models.Payment{ID: id}, f.err
}

func (f *fakePaymentSrv) Create(_ context.Context, req models.PaymentRequest) (*models.Payment, error) {
	return &models.Payment{ID: 11, StudentID: req.StudentID, Amount: req.Amount}, f.err
}

func (f *fakePaymentSrv) Update(_ context.Context, id int64, _ models.PaymentRequest) (*models.Payment, error) {
	return &models.Payment{ID: id}, f.err
}

func (f *fakePaymentSrv) Delete(context.Context, int64) error { return f.err }

func (f *fakePaymentSrv) UpdateStatus(_ context.Context, id int64, req models.PaymentStatusRequest) (*models.Payment, error) {
	return &models.Payment{ID: id, Status: req.Status}, f.err
}

func (f *fakePaymentSrv) Refund(_ context.Context, id int64, req models.RefundRequest) (*models.Payment, error) {
	f.lastRefund = req
	return &models.Payment{ID: id, RefundedAmount: req.Amount, Status: models.PaymentPartiallyRefunded}, f.err
}

func (f *fakePaymentSrv) Summary(_ context.Context, from, _ *time.Time) (*models.PaymentSummary, error) {
	f.summaryFrom = from
	return &models.PaymentSummary{}, f.err
}

func (f *fakePaymentSrv) Checkout(_ context.Context, id int64, successURL, _ string) (*models.CheckoutSession, error) {
	f.successURL = successURL
	return &models.CheckoutSession{Provider: "sandbox", SessionID: "cs_1"}, f.err
}

func paymentRouter(srv *fakePaymentSrv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(srv)
	r := gin.New()
	r.GET("/api/v1/payments", h.List)
	r.GET("/api/v1/payments/summary", h.Summary)
	r.PATCH("/api/v1/payments/:id/status", h.UpdateStatus)
	r.POST("/api/v1/payments/:id/refund", h.Refund)
	r.POST("/api/v1/payments/:id/checkout", h.Checkout)
	return r
}

func TestPaymentHandlerListFilters(t *testing.T) {
	srv := &fakePaymentSrv{}
	rec := perform(paymentRouter(srv), http.MethodGet, "/api/v1/payments?studentId=4&status=completed&from=2024-01-01", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastFilter.StudentID)
	assert.Equal(t, int64(4), *srv.lastFilter.StudentID)
	require.NotNil(t, srv.lastFilter.Status)
	assert.Equal(t, models.PaymentCompleted, *srv.lastFilter.Status)
	require.NotNil(t, srv.lastFilter.From)
	assert.Equal(t, 2024, srv.lastFilter.From.Year())
	assert.Nil(t, srv.lastFilter.To)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, []interface{}{}, envelope.Data["items"])
}

func TestPaymentHandlerListRejectsBadQuery(t *testing.T) {
	cases := []string{
		"/api/v1/payments?status=LOST",
		"/api/v1/payments?studentId=abc",
		"/api/v1/payments?from=01/02/2024",
	}
	for _, target := range cases {
		rec := perform(paymentRouter(&fakePaymentSrv{}), http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestPaymentHandlerSummaryAcceptsRFC3339(t *testing.T) {
	srv := &fakePaymentSrv{}
	rec := perform(paymentRouter(srv), http.MethodGet, "/api/v1/payments/summary?from=2024-02-01T10:00:00Z", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.summaryFrom)
	assert.Equal(t, 10, srv.summaryFrom.Hour())
}

func TestPaymentHandlerRefund(t *testing.T) {
	srv := &fakePaymentSrv{}
	rec := perform(paymentRouter(srv), http.MethodPost, "/api/v1/payments/3/refund", `{"amount":25.5}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 25.5, srv.lastRefund.Amount, 0.0001)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "PARTIALLY_REFUNDED", envelope.Data["status"])
}

func TestPaymentHandlerCheckoutWithoutBody(t *testing.T) {
	srv := &fakePaymentSrv{}
	rec := perform(paymentRouter(srv), http.MethodPost, "/api/v1/payments/3/checkout", "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, srv.successURL)
}

func TestPaymentHandlerCheckoutWithURLs(t *testing.T) {
	srv := &fakePaymentSrv{}
	rec := perform(paymentRouter(srv), http.MethodPost, "/api/v1/payments/3/checkout", `{"successUrl":"https://center.example.com/paid"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "https://center.example.com/paid", srv.successURL)
}
