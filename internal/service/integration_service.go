package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

// CalendarProvider books events on an external calendar.
type CalendarProvider interface {
	CreateEvent(ctx context.Context, req models.CalendarEventRequest) (*models.CalendarEvent, error)
}

// MeetingProvider creates online meetings on a video conferencing service.
type MeetingProvider interface {
	CreateMeeting(ctx context.Context, req models.MeetingRequest) (*models.Meeting, error)
}

// IntegrationService validates integration requests and forwards them to providers.
type IntegrationService struct {
	calendar  CalendarProvider
	meetings  MeetingProvider
	validator *validation.Validator
	logger    *zap.Logger
}

// NewIntegrationService constructs the integration service.
func NewIntegrationService(calendar CalendarProvider, meetings MeetingProvider, validator *validation.Validator, logger *zap.Logger) *IntegrationService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrationService{calendar: calendar, meetings: meetings, validator: validator, logger: logger}
}

// CreateCalendarEvent books a calendar event.
func (s *IntegrationService) CreateCalendarEvent(ctx context.Context, req models.CalendarEventRequest) (*models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if s.calendar == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "calendar provider is not configured")
	}
	event, err := s.calendar.CreateEvent(ctx, req)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create calendar event")
	}
	s.logger.Info("calendar event created", zap.String("provider", event.Provider), zap.String("event_id", event.EventID))
	return event, nil
}

// CreateMeeting creates an online meeting.
func (s *IntegrationService) CreateMeeting(ctx context.Context, req models.MeetingRequest) (*models.Meeting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if s.meetings == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "meeting provider is not configured")
	}
	meeting, err := s.meetings.CreateMeeting(ctx, req)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create meeting")
	}
	s.logger.Info("meeting created", zap.String("provider", meeting.Provider), zap.String("meeting_id", meeting.MeetingID))
	return meeting, nil
}

const sandboxProvider = "sandbox"

// SandboxCalendar returns generated events without calling out.
type SandboxCalendar struct {
	BaseURL string
	now     func() time.Time
}

// NewSandboxCalendar constructs a sandbox calendar rooted at baseURL.
func NewSandboxCalendar(baseURL string) *SandboxCalendar {
	if baseURL == "" {
		baseURL = "https://calendar.sandbox.local"
	}
	return &SandboxCalendar{BaseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// CreateEvent implements CalendarProvider.
func (c *SandboxCalendar) CreateEvent(_ context.Context, req models.CalendarEventRequest) (*models.CalendarEvent, error) {
	id := uuid.NewString()
	return &models.CalendarEvent{
		Provider:  sandboxProvider,
		EventID:   id,
		HTMLLink:  fmt.Sprintf("%s/events/%s", c.BaseURL, id),
		Title:     strings.TrimSpace(req.Title),
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt.UTC(),
		CreatedAt: c.now().UTC(),
	}, nil
}

// SandboxMeetings returns generated meetings without calling out.
type SandboxMeetings struct {
	BaseURL string
}

// NewSandboxMeetings constructs a sandbox meeting provider.
func NewSandboxMeetings(baseURL string) *SandboxMeetings {
	if baseURL == "" {
		baseURL = "https://meet.sandbox.local"
	}
	return &SandboxMeetings{BaseURL: strings.TrimRight(baseURL, "/")}
}

// CreateMeeting implements MeetingProvider.
func (m *SandboxMeetings) CreateMeeting(_ context.Context, req models.MeetingRequest) (*models.Meeting, error) {
	id := uuid.New()
	return &models.Meeting{
		Provider:  sandboxProvider,
		MeetingID: id.String(),
		JoinURL:   fmt.Sprintf("%s/j/%s", m.BaseURL, id.String()),
		Passcode:  strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]),
		Topic:     strings.TrimSpace(req.Topic),
		StartsAt:  req.StartsAt.UTC(),
	}, nil
}

// SandboxGateway opens fake checkout sessions.
type SandboxGateway struct {
	BaseURL    string
	SessionTTL time.Duration
	now        func() time.Time
}

// NewSandboxGateway constructs a sandbox payment gateway.
func NewSandboxGateway(baseURL string, ttl time.Duration) *SandboxGateway {
	if baseURL == "" {
		baseURL = "https://pay.sandbox.local"
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SandboxGateway{BaseURL: strings.TrimRight(baseURL, "/"), SessionTTL: ttl, now: time.Now}
}

// CreateCheckout implements PaymentGateway.
func (g *SandboxGateway) CreateCheckout(_ context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("checkout amount must be positive")
	}
	id := "cs_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return &models.CheckoutSession{
		Provider:    sandboxProvider,
		SessionID:   id,
		CheckoutURL: fmt.Sprintf("%s/checkout/%s", g.BaseURL, id),
		ExpiresAt:   g.now().UTC().Add(g.SessionTTL),
	}, nil
}
