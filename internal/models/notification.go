package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NotificationChannel selects the delivery transport.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
)

// Valid reports whether ch is a supported channel.
func (ch NotificationChannel) Valid() bool { return ch == ChannelEmail || ch == ChannelSMS }

// NotificationStatus tracks a notification through delivery.
type NotificationStatus string

const (
	NotificationQueued    NotificationStatus = "QUEUED"
	NotificationScheduled NotificationStatus = "SCHEDULED"
	NotificationSent      NotificationStatus = "SENT"
	NotificationFailed    NotificationStatus = "FAILED"
	NotificationCancelled NotificationStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationQueued, NotificationScheduled, NotificationSent, NotificationFailed, NotificationCancelled:
		return true
	}
	return false
}

// NotificationTemplate is a persisted message template rendered with text/template.
type NotificationTemplate struct {
	ID        int64               `db:"id" json:"id"`
	Code      string              `db:"code" json:"code"`
	Channel   NotificationChannel `db:"channel" json:"channel"`
	Subject   string              `db:"subject" json:"subject"`
	Body      string              `db:"body" json:"body"`
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `db:"updated_at" json:"updatedAt"`
}

// NotificationTemplateRequest is the create and update payload for templates.
type NotificationTemplateRequest struct {
	Code    string              `json:"code" validate:"required,notblank,max=100"`
	Channel NotificationChannel `json:"channel" validate:"required,oneof=EMAIL SMS"`
	Subject string              `json:"subject" validate:"max=255"`
	Body    string              `json:"body" validate:"required,notblank"`
}

// Variables are template values; persisted as JSONB.
type Variables map[string]string

// Value marshals variables to JSON for persistence.
func (v Variables) Value() (driver.Value, error) {
	if v == nil {
		v = Variables{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal notification variables: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into variables.
func (v *Variables) Scan(value interface{}) error {
	if value == nil {
		*v = Variables{}
		return nil
	}
	var raw []byte
	switch typed := value.(type) {
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		return fmt.Errorf("unsupported notification variables type %T", value)
	}
	if len(raw) == 0 {
		*v = Variables{}
		return nil
	}
	return json.Unmarshal(raw, v)
}

// Notification is one message to one recipient.
type Notification struct {
	ID           string              `db:"id" json:"id"`
	TemplateCode *string             `db:"template_code" json:"templateCode,omitempty"`
	Channel      NotificationChannel `db:"channel" json:"channel"`
	Recipient    string              `db:"recipient" json:"recipient"`
	Subject      string              `db:"subject" json:"subject"`
	Body         string              `db:"body" json:"body"`
	Variables    Variables           `db:"variables" json:"variables,omitempty"`
	Status       NotificationStatus  `db:"status" json:"status"`
	ScheduledAt  *time.Time          `db:"scheduled_at" json:"scheduledAt,omitempty"`
	SentAt       *time.Time          `db:"sent_at" json:"sentAt,omitempty"`
	Error        *string             `db:"error" json:"error,omitempty"`
	CreatedBy    *int64              `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time           `db:"created_at" json:"createdAt"`
}

// NotificationFilter captures list filters for the notification log.
type NotificationFilter struct {
	PageRequest
	Status    *NotificationStatus
	Channel   *NotificationChannel
	Recipient string
}

// SendNotificationRequest sends a message now, or at SendAt when scheduling.
type SendNotificationRequest struct {
	Channel      NotificationChannel `json:"channel" validate:"required,oneof=EMAIL SMS"`
	Recipients   []string            `json:"recipients" validate:"required,min=1,max=500,dive,required,max=255"`
	TemplateCode *string             `json:"templateCode,omitempty" validate:"omitempty,max=100"`
	Variables    Variables           `json:"variables,omitempty"`
	Subject      string              `json:"subject,omitempty" validate:"max=255"`
	Body         string              `json:"body,omitempty"`
	SendAt       *time.Time          `json:"sendAt,omitempty"`
}

// NotificationBatch is the outcome of a send or schedule call.
type NotificationBatch struct {
	Status        NotificationStatus `json:"status"`
	Notifications []Notification     `json:"notifications"`
}
