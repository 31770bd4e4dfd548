package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type brokenCalendar struct{}

func (brokenCalendar) CreateEvent(context.Context, models.CalendarEventRequest) (*models.CalendarEvent, error) {
	return nil, errors.New("provider down")
}

func TestIntegrationServiceCreateCalendarEvent(t *testing.T) {
	svc := NewIntegrationService(NewSandboxCalendar(""), NewSandboxMeetings(""), nil, zap.NewNop())
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	event, err := svc.CreateCalendarEvent(context.Background(), models.CalendarEventRequest{
		Title:    " IELTS mock exam ",
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "sandbox", event.Provider)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "IELTS mock exam", event.Title)
	assert.True(t, strings.HasSuffix(event.HTMLLink, event.EventID))
}

func TestIntegrationServiceCalendarValidation(t *testing.T) {
	svc := NewIntegrationService(NewSandboxCalendar(""), nil, nil, zap.NewNop())
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	_, err := svc.CreateCalendarEvent(context.Background(), models.CalendarEventRequest{
		Title:    "Backwards",
		StartsAt: start,
		EndsAt:   start.Add(-time.Hour),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "endsAt")
}

func TestIntegrationServiceProviderFailure(t *testing.T) {
	svc := NewIntegrationService(brokenCalendar{}, nil, nil, zap.NewNop())
	start := time.Now()

	_, err := svc.CreateCalendarEvent(context.Background(), models.CalendarEventRequest{Title: "x", StartsAt: start, EndsAt: start.Add(time.Hour)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateMeeting(context.Background(), models.MeetingRequest{Topic: "x", StartsAt: start, DurationMinutes: 30})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestIntegrationServiceCreateMeeting(t *testing.T) {
	svc := NewIntegrationService(nil, NewSandboxMeetings("https://meet.example.com/"), nil, zap.NewNop())

	meeting, err := svc.CreateMeeting(context.Background(), models.MeetingRequest{Topic: "Speaking club", StartsAt: time.Now(), DurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(meeting.JoinURL, "https://meet.example.com/j/"))
	assert.Len(t, meeting.Passcode, 8)

	_, err = svc.CreateMeeting(context.Background(), models.MeetingRequest{Topic: "Too long", StartsAt: time.Now(), DurationMinutes: 601})
	require.Error(t, err)
}

func TestSandboxGatewayCreateCheckout(t *testing.T) {
	gw := NewSandboxGateway("", time.Hour)
	gw.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	session, err := gw.CreateCheckout(context.Background(), models.CheckoutRequest{PaymentID: 3, Amount: 120, Currency: "USD"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.SessionID, "cs_"))
	assert.Equal(t, time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), session.ExpiresAt)

	_, err = gw.CreateCheckout(context.Background(), models.CheckoutRequest{PaymentID: 3})
	require.Error(t, err)
}
