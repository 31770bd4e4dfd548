package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

type opportunityService interface {
	List(ctx context.Context, filter models.OpportunityFilter) (models.PagedResult[models.Opportunity], error)
	Get(ctx context.Context, id int64) (*models.Opportunity, error)
	Create(ctx context.Context, req models.OpportunityRequest) (*models.Opportunity, error)
	Update(ctx context.Context, id int64, req models.OpportunityRequest) (*models.Opportunity, error)
	Delete(ctx context.Context, id int64) error
	UpdateStage(ctx context.Context, id int64, req models.OpportunityStageRequest) (*models.Opportunity, error)
	Pipeline(ctx context.Context) (*models.PipelineSummary, error)
}

// OpportunityHandler exposes CRM opportunity endpoints.
type OpportunityHandler struct {
	opportunities opportunityService
}

// NewOpportunityHandler constructs OpportunityHandler.
func NewOpportunityHandler(opportunities opportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

// List godoc
// @Summary List opportunities
// @Tags CRM
// @Produce json
// @Param stage query string false "Pipeline stage"
// @Param leadId query int false "Lead ID"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	stage, ok := queryEnum(c, "stage", models.OpportunityStage.Valid)
	if !ok {
		return
	}
	leadID, ok := queryInt64(c, "leadId")
	if !ok {
		return
	}
	page, err := h.opportunities.List(c.Request.Context(), models.OpportunityFilter{
		PageRequest: pageRequest(c),
		Stage:       stage,
		LeadID:      leadID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Get godoc
// @Summary Get opportunity
// @Tags CRM
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} response.Envelope
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	opp, err := h.opportunities.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opp)
}

// Create godoc
// @Summary Create opportunity
// @Tags CRM
// @Accept json
// @Produce json
// @Param payload body models.OpportunityRequest true "Opportunity payload"
// @Success 201 {object} response.Envelope
// @Router /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req models.OpportunityRequest
	if !bindJSON(c, &req) {
		return
	}
	opp, err := h.opportunities.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, opp.ID, opp)
}

// Update godoc
// @Summary Update opportunity
// @Tags CRM
// @Accept json
// @Produce json
// @Param id path int true "Opportunity ID"
// @Param payload body models.OpportunityRequest true "Opportunity payload"
// @Success 200 {object} response.Envelope
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.OpportunityRequest
	if !bindJSON(c, &req) {
		return
	}
	opp, err := h.opportunities.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opp)
}

// Delete godoc
// @Summary Delete opportunity
// @Tags CRM
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} response.Envelope
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.opportunities.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	deleted(c, "opportunity")
}

// UpdateStage godoc
// @Summary Move an opportunity along the pipeline
// @Tags CRM
// @Accept json
// @Produce json
// @Param id path int true "Opportunity ID"
// @Param payload body models.OpportunityStageRequest true "Target stage"
// @Success 200 {object} response.Envelope
// @Router /opportunities/{id}/stage [patch]
func (h *OpportunityHandler) UpdateStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.OpportunityStageRequest
	if !bindJSON(c, &req) {
		return
	}
	opp, err := h.opportunities.UpdateStage(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opp)
}

// Pipeline godoc
// @Summary Pipeline totals per stage with win rate
// @Tags CRM
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /opportunities/pipeline [get]
func (h *OpportunityHandler) Pipeline(c *gin.Context) {
	summary, err := h.opportunities.Pipeline(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
