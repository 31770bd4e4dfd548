package models

import "time"

// PaymentStatus tracks the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentCompleted         PaymentStatus = "COMPLETED"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentCancelled         PaymentStatus = "CANCELLED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

var paymentTransitions = transitions[PaymentStatus]{
	PaymentPending:           {PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentFailed:            {PaymentPending},
	PaymentCompleted:         {PaymentRefunded, PaymentPartiallyRefunded},
	PaymentPartiallyRefunded: {PaymentRefunded, PaymentPartiallyRefunded},
	PaymentCancelled:         {},
	PaymentRefunded:          {},
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool { return paymentTransitions.known(s) }

// CanTransitionTo reports whether a payment may move from s to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return paymentTransitions.allows(s, next)
}

// IsRefundState reports statuses only reachable through a refund.
func (s PaymentStatus) IsRefundState() bool {
	return s == PaymentRefunded || s == PaymentPartiallyRefunded
}

// PaymentMethod describes how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
)

// Payment is a fee payment by a student.
type Payment struct {
	ID             int64         `db:"id" json:"id"`
	StudentID      int64         `db:"student_id" json:"studentId"`
	CourseID       *int64        `db:"course_id" json:"courseId,omitempty"`
	Amount         float64       `db:"amount" json:"amount"`
	RefundedAmount float64       `db:"refunded_amount" json:"refundedAmount"`
	Currency       string        `db:"currency" json:"currency"`
	Status         PaymentStatus `db:"status" json:"status"`
	Method         PaymentMethod `db:"method" json:"method"`
	Reference      *string       `db:"reference" json:"reference,omitempty"`
	Notes          *string       `db:"notes" json:"notes,omitempty"`
	PaymentDate    time.Time     `db:"payment_date" json:"paymentDate"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`
}

// Refundable returns the amount still available for refund.
func (p Payment) Refundable() float64 {
	return p.Amount - p.RefundedAmount
}

// PaymentFilter captures list filters for payments.
type PaymentFilter struct {
	PageRequest
	StudentID *int64
	CourseID  *int64
	Status    *PaymentStatus
	From      *time.Time
	To        *time.Time
}

// PaymentRequest is the create and update payload for payments.
type PaymentRequest struct {
	StudentID   int64         `json:"studentId" validate:"required,gt=0"`
	CourseID    *int64        `json:"courseId,omitempty" validate:"omitempty,gt=0"`
	Amount      float64       `json:"amount" validate:"required,gt=0"`
	Currency    string        `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Method      PaymentMethod `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER ONLINE"`
	Reference   *string       `json:"reference,omitempty" validate:"omitempty,max=100"`
	Notes       *string       `json:"notes,omitempty" validate:"omitempty,max=1000"`
	PaymentDate *time.Time    `json:"paymentDate,omitempty"`
}

// PaymentStatusRequest moves a payment to a new status.
type PaymentStatusRequest struct {
	Status PaymentStatus `json:"status" validate:"required,oneof=PENDING COMPLETED FAILED CANCELLED REFUNDED PARTIALLY_REFUNDED"`
}

// RefundRequest refunds part or all of a completed payment.
type RefundRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// PaymentStatusTotal is the count and sum of payments in one status.
type PaymentStatusTotal struct {
	Status PaymentStatus `db:"status" json:"status"`
	Count  int           `db:"count" json:"count"`
	Amount float64       `db:"amount" json:"amount"`
}

// PaymentSummary aggregates payments over an optional period.
type PaymentSummary struct {
	From          *time.Time                           `json:"from,omitempty"`
	To            *time.Time                           `json:"to,omitempty"`
	TotalCount    int                                  `json:"totalCount"`
	ByStatus      map[PaymentStatus]PaymentStatusTotal `json:"byStatus"`
	GrossRevenue  float64                              `json:"grossRevenue"`
	TotalRefunded float64                              `json:"totalRefunded"`
	NetRevenue    float64                              `json:"netRevenue"`
	Pending       float64                              `json:"pending"`
}
