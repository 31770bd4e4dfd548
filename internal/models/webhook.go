package models

import (
	"time"

	"github.com/lib/pq"
)

// Domain events published to webhook subscribers.
const (
	EventStudentCreated    = "student.created"
	EventEnrollmentCreated = "enrollment.created"
	EventPaymentCompleted  = "payment.completed"
	EventPaymentRefunded   = "payment.refunded"
	EventLeadConverted     = "lead.converted"
)

// WebhookEvents lists every event a subscription may select.
var WebhookEvents = []string{EventStudentCreated, EventEnrollmentCreated, EventPaymentCompleted, EventPaymentRefunded, EventLeadConverted}

// WebhookSubscription is an external endpoint receiving domain events.
type WebhookSubscription struct {
	ID        int64          `db:"id" json:"id"`
	URL       string         `db:"url" json:"url"`
	Secret    string         `db:"secret" json:"-"`
	Events    pq.StringArray `db:"events" json:"events"`
	Active    bool           `db:"active" json:"active"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// Subscribes reports whether the subscription wants event.
func (w WebhookSubscription) Subscribes(event string) bool {
	for _, e := range w.Events {
		if e == event || e == "*" {
			return true
		}
	}
	return false
}

// WebhookSubscriptionRequest registers a subscriber. Secret is generated when omitted.
type WebhookSubscriptionRequest struct {
	URL    string   `json:"url" validate:"required,url,max=500"`
	Secret string   `json:"secret,omitempty" validate:"omitempty,min=16,max=128"`
	Events []string `json:"events" validate:"required,min=1,dive,oneof=* student.created enrollment.created payment.completed payment.refunded lead.converted"`
}

// WebhookSubscriptionCreated returns the secret once, on creation.
type WebhookSubscriptionCreated struct {
	WebhookSubscription
	Secret string `json:"secret"`
}

// WebhookEnvelope is the JSON body posted to subscribers.
type WebhookEnvelope struct {
	ID         string      `json:"id"`
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}
