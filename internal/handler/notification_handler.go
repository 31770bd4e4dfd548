package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type notificationService interface {
	ListTemplates(ctx context.Context) ([]models.NotificationTemplate, error)
	GetTemplate(ctx context.Context, id int64) (*models.NotificationTemplate, error)
	CreateTemplate(ctx context.Context, req models.NotificationTemplateRequest) (*models.NotificationTemplate, error)
	UpdateTemplate(ctx context.Context, id int64, req models.NotificationTemplateRequest) (*models.NotificationTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.NotificationFilter) (models.PagedResult[models.Notification], error)
	Get(ctx context.Context, id string) (*models.Notification, error)
	Send(ctx context.Context, req models.SendNotificationRequest, actorID *int64) (*models.NotificationBatch, error)
	Schedule(ctx context.Context, req models.SendNotificationRequest, actorID *int64) (*models.NotificationBatch, error)
	Cancel(ctx context.Context, id string) error
}

// NotificationHandler exposes notification and template endpoints.
type NotificationHandler struct {
	notifications notificationService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications notificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListTemplates godoc
// @Summary List notification templates
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/templates [get]
func (h *NotificationHandler) ListTemplates(c *gin.Context) {
	templates, err := h.notifications.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get notification template
// @Tags Notifications
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/templates/{id} [get]
func (h *NotificationHandler) GetTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tpl, err := h.notifications.GetTemplate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl)
}

// CreateTemplate godoc
// @Summary Create notification template
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body models.NotificationTemplateRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Router /notifications/templates [post]
func (h *NotificationHandler) CreateTemplate(c *gin.Context) {
	var req models.NotificationTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	tpl, err := h.notifications.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, tpl.ID, tpl)
}

// UpdateTemplate godoc
// @Summary Update notification template
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param payload body models.NotificationTemplateRequest true "Template payload"
// @Success 200 {object} response.Envelope
// @Router /notifications/templates/{id} [put]
func (h *NotificationHandler) UpdateTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.NotificationTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	tpl, err := h.notifications.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl)
}

// DeleteTemplate godoc
// @Summary Delete notification template
// @Tags Notifications
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/templates/{id} [delete]
func (h *NotificationHandler) DeleteTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.DeleteTemplate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "template")
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param status query string false "SCHEDULED, QUEUED, SENT, FAILED or CANCELLED"
// @Param channel query string false "EMAIL or SMS"
// @Param recipient query string false "Recipient address"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	status, ok := queryEnum(c, "status", models.NotificationStatus.Valid)
	if !ok {
		return
	}
	channel, ok := queryEnum(c, "channel", models.NotificationChannel.Valid)
	if !ok {
		return
	}
	page, err := h.notifications.List(c.Request.Context(), models.NotificationFilter{
		PageRequest: pageRequest(c),
		Status:      status,
		Channel:     channel,
		Recipient:   strings.TrimSpace(c.Query("recipient")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Get godoc
// @Summary Get notification delivery status
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id} [get]
func (h *NotificationHandler) Get(c *gin.Context) {
	notification, err := h.notifications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notification)
}

// Send godoc
// @Summary Queue a notification for immediate delivery
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body models.SendNotificationRequest true "Notification payload"
// @Success 202 {object} response.Envelope
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req models.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	batch, err := h.notifications.Send(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, batch)
}

// Schedule godoc
// @Summary Schedule a notification for later delivery
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body models.SendNotificationRequest true "Notification payload with sendAt"
// @Success 202 {object} response.Envelope
// @Router /notifications/schedule [post]
func (h *NotificationHandler) Schedule(c *gin.Context) {
	var req models.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	batch, err := h.notifications.Schedule(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, batch)
}

// Cancel godoc
// @Summary Cancel a scheduled or queued notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Cancel(c *gin.Context) {
	if err := h.notifications.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "notification cancelled")
}
