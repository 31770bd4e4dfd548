package models

import "time"

// CalendarEventRequest books a calendar event for a course session.
type CalendarEventRequest struct {
	Title       string    `json:"title" validate:"required,notblank,max=200"`
	Description string    `json:"description,omitempty" validate:"max=2000"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
	Attendees   []string  `json:"attendees,omitempty" validate:"omitempty,dive,email"`
	CourseID    *int64    `json:"courseId,omitempty" validate:"omitempty,gt=0"`
}

// CalendarEvent is the provider's record of a created event.
type CalendarEvent struct {
	Provider  string    `json:"provider"`
	EventID   string    `json:"eventId"`
	HTMLLink  string    `json:"htmlLink"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeetingRequest creates an online class meeting.
type MeetingRequest struct {
	Topic           string    `json:"topic" validate:"required,notblank,max=200"`
	StartsAt        time.Time `json:"startsAt" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0,lte=600"`
	CourseID        *int64    `json:"courseId,omitempty" validate:"omitempty,gt=0"`
}

// Meeting is the provider's record of a created meeting.
type Meeting struct {
	Provider  string    `json:"provider"`
	MeetingID string    `json:"meetingId"`
	JoinURL   string    `json:"joinUrl"`
	Passcode  string    `json:"passcode"`
	Topic     string    `json:"topic"`
	StartsAt  time.Time `json:"startsAt"`
}

// CheckoutRequest is what a payment gateway needs to open a checkout.
type CheckoutRequest struct {
	PaymentID   int64   `json:"paymentId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	SuccessURL  string  `json:"successUrl,omitempty" validate:"omitempty,url"`
	CancelURL   string  `json:"cancelUrl,omitempty" validate:"omitempty,url"`
}

// CheckoutSession is the gateway's checkout handle.
type CheckoutSession struct {
	Provider    string    `json:"provider"`
	SessionID   string    `json:"sessionId"`
	CheckoutURL string    `json:"checkoutUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
