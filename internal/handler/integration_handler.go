package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type integrationService interface {
	CreateCalendarEvent(ctx context.Context, req models.CalendarEventRequest) (*models.CalendarEvent, error)
	CreateMeeting(ctx context.Context, req models.MeetingRequest) (*models.Meeting, error)
}

type webhookService interface {
	List(ctx context.Context) ([]models.WebhookSubscription, error)
	Create(ctx context.Context, req models.WebhookSubscriptionRequest) (*models.WebhookSubscriptionCreated, error)
	Delete(ctx context.Context, id int64) error
}

// IntegrationHandler exposes calendar, meeting and webhook endpoints.
type IntegrationHandler struct {
	integrations integrationService
	webhooks     webhookService
}

// NewIntegrationHandler constructs IntegrationHandler.
func NewIntegrationHandler(integrations integrationService, webhooks webhookService) *IntegrationHandler {
	return &IntegrationHandler{integrations: integrations, webhooks: webhooks}
}

// CreateCalendarEvent godoc
// @Summary Create a calendar event with the configured provider
// @Tags Integrations
// @Accept json
// @Produce json
// @Param payload body models.CalendarEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /integrations/calendar/events [post]
func (h *IntegrationHandler) CreateCalendarEvent(c *gin.Context) {
	var req models.CalendarEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.integrations.CreateCalendarEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event.HTMLLink, event)
}

// CreateMeeting godoc
// @Summary Create an online meeting with the configured provider
// @Tags Integrations
// @Accept json
// @Produce json
// @Param payload body models.MeetingRequest true "Meeting payload"
// @Success 201 {object} response.Envelope
// @Router /integrations/meetings [post]
func (h *IntegrationHandler) CreateMeeting(c *gin.Context) {
	var req models.MeetingRequest
	if !bindJSON(c, &req) {
		return
	}
	meeting, err := h.integrations.CreateMeeting(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, meeting.JoinURL, meeting)
}

// ListWebhooks godoc
// @Summary List webhook subscriptions
// @Tags Integrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /integrations/webhooks [get]
func (h *IntegrationHandler) ListWebhooks(c *gin.Context) {
	subs, err := h.webhooks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs)
}

// CreateWebhook godoc
// @Summary Subscribe a URL to domain events
// @Description The signing secret is only returned in this response.
// @Tags Integrations
// @Accept json
// @Produce json
// @Param payload body models.WebhookSubscriptionRequest true "Subscription payload"
// @Success 201 {object} response.Envelope
// @Router /integrations/webhooks [post]
func (h *IntegrationHandler) CreateWebhook(c *gin.Context) {
	var req models.WebhookSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.webhooks.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, sub.ID, sub)
}

// DeleteWebhook godoc
// @Summary Remove a webhook subscription
// @Tags Integrations
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} response.Envelope
// @Router /integrations/webhooks/{id} [delete]
func (h *IntegrationHandler) DeleteWebhook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.webhooks.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "webhook subscription")
}
