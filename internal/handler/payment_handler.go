package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type paymentService interface {
	List(ctx context.Context, filter models.PaymentFilter) (models.PagedResult[models.Payment], error)
	Get(ctx context.Context, id int64) (*models.Payment, error)
	Create(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
	Update(ctx context.Context, id int64, req models.PaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, req models.PaymentStatusRequest) (*models.Payment, error)
	Refund(ctx context.Context, id int64, req models.RefundRequest) (*models.Payment, error)
	Summary(ctx context.Context, from, to *time.Time) (*models.PaymentSummary, error)
	Checkout(ctx context.Context, id int64, successURL, cancelURL string) (*models.CheckoutSession, error)
}

type checkoutPayload struct {
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	payments paymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments paymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param studentId query int false "Student ID"
// @Param courseId query int false "Course ID"
// @Param status query string false "Payment status"
// @Param from query string false "Paid on or after (YYYY-MM-DD)"
// @Param to query string false "Paid on or before (YYYY-MM-DD)"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	studentID, ok := queryInt64(c, "studentId")
	if !ok {
		return
	}
	courseID, ok := queryInt64(c, "courseId")
	if !ok {
		return
	}
	status, ok := queryEnum(c, "status", models.PaymentStatus.Valid)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	page, err := h.payments.List(c.Request.Context(), models.PaymentFilter{
		PageRequest: pageRequest(c),
		StudentID:   studentID,
		CourseID:    courseID,
		Status:      status,
		From:        from,
		To:          to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Get godoc
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// Create godoc
// @Summary Record a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body models.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, payment.ID, payment)
}

// Update godoc
// @Summary Update payment details
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body models.PaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payments.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// Delete godoc
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "payment")
}

// UpdateStatus godoc
// @Summary Move a payment to a new status
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body models.PaymentStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.PaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payments.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// Refund godoc
// @Summary Refund part or all of a completed payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body models.RefundRequest true "Refund payload"
// @Success 200 {object} response.Envelope
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.RefundRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payments.Refund(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// Summary godoc
// @Summary Payment totals per status and net revenue
// @Tags Payments
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /payments/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	summary, err := h.payments.Summary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Checkout godoc
// @Summary Open a gateway checkout session for a pending payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body checkoutPayload false "Redirect URLs"
// @Success 201 {object} response.Envelope
// @Router /payments/{id}/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req checkoutPayload
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	session, err := h.payments.Checkout(c.Request.Context(), id, req.SuccessURL, req.CancelURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "", session)
}

func dateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	from, ok := queryTime(c, "from")
	if !ok {
		return nil, nil, false
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return nil, nil, false
	}
	return from, to, true
}
