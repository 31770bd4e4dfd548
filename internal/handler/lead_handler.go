package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type leadService interface {
	List(ctx context.Context, filter models.LeadFilter) (models.PagedResult[models.Lead], error)
	Search(ctx context.Context, term string) ([]models.Lead, error)
	Get(ctx context.Context, id int64) (*models.Lead, error)
	Create(ctx context.Context, req models.LeadRequest) (*models.Lead, error)
	Update(ctx context.Context, id int64, req models.LeadRequest) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, req models.LeadStatusRequest) (*models.Lead, error)
	Convert(ctx context.Context, id int64) (*models.LeadConversion, error)
}

// LeadHandler exposes CRM lead endpoints.
type LeadHandler struct {
	leads leadService
}

// NewLeadHandler constructs LeadHandler.
func NewLeadHandler(leads leadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// List godoc
// @Summary List leads
// @Tags CRM
// @Produce json
// @Param status query string false "Lead status"
// @Param source query string false "Lead source"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	status, ok := queryEnum(c, "status", models.LeadStatus.Valid)
	if !ok {
		return
	}
	page, err := h.leads.List(c.Request.Context(), models.LeadFilter{
		PageRequest: pageRequest(c),
		Status:      status,
		Source:      strings.TrimSpace(c.Query("source")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Search godoc
// @Summary Search leads by name, email or company
// @Tags CRM
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Router /leads/search [get]
func (h *LeadHandler) Search(c *gin.Context) {
	leads, err := h.leads.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leads)
}

// Get godoc
// @Summary Get lead
// @Tags CRM
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Envelope
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lead, err := h.leads.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead)
}

// Create godoc
// @Summary Create lead
// @Tags CRM
// @Accept json
// @Produce json
// @Param payload body models.LeadRequest true "Lead payload"
// @Success 201 {object} response.Envelope
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req models.LeadRequest
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.leads.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, lead.ID, lead)
}

// Update godoc
// @Summary Update lead
// @Tags CRM
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param payload body models.LeadRequest true "Lead payload"
// @Success 200 {object} response.Envelope
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.LeadRequest
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.leads.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead)
}

// Delete godoc
// @Summary Delete lead
// @Tags CRM
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Envelope
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.leads.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "lead")
}

// UpdateStatus godoc
// @Summary Move a lead to a new status
// @Tags CRM
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param payload body models.LeadStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.LeadStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.leads.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead)
}

// Convert godoc
// @Summary Convert a qualified lead into a student
// @Tags CRM
// @Produce json
// @Param id path int true "Lead ID"
// @Success 201 {object} response.Envelope
// @Router /leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conversion, err := h.leads.Convert(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "/api/v1/students/"+toString(conversion.Student.ID), conversion)
}
