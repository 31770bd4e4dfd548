package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

type opportunityRepository interface {
	List(ctx context.Context, filter models.OpportunityFilter) ([]models.Opportunity, int, error)
	FindByID(ctx context.Context, id int64) (*models.Opportunity, error)
	Create(ctx context.Context, opportunity *models.Opportunity) error
	Update(ctx context.Context, opportunity *models.Opportunity) error
	UpdateStage(ctx context.Context, id int64, from, to models.OpportunityStage) error
	Delete(ctx context.Context, id int64) error
	TotalsByStage(ctx context.Context) ([]models.PipelineStageTotal, error)
}

type leadFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Lead, error)
}

// OpportunityService manages the sales pipeline.
type OpportunityService struct {
	repo      opportunityRepository
	leads     leadFinder
	validator *validation.Validator
	logger    *zap.Logger
}

// NewOpportunityService constructs the opportunity service.
func NewOpportunityService(repo opportunityRepository, leads leadFinder, validator *validation.Validator, logger *zap.Logger) *OpportunityService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpportunityService{repo: repo, leads: leads, validator: validator, logger: logger}
}

// List returns a page of opportunities, newest first.
func (s *OpportunityService) List(ctx context.Context, filter models.OpportunityFilter) (models.PagedResult[models.Opportunity], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.Opportunity]{}, appErrors.Internal(err, "failed to list opportunities")
	}
	return models.NewPagedResult(items, total, filter.PageRequest), nil
}

// Get returns an opportunity by id.
func (s *OpportunityService) Get(ctx context.Context, id int64) (*models.Opportunity, error) {
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "opportunity")
	}
	return opp, nil
}

// Create opens an opportunity at the PROSPECT stage.
func (s *OpportunityService) Create(ctx context.Context, req models.OpportunityRequest) (*models.Opportunity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureLead(ctx, req.LeadID); err != nil {
		return nil, err
	}
	opp := &models.Opportunity{Stage: models.StageProspect}
	applyOpportunityRequest(opp, req)
	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, writeError(err, "create", "opportunity")
	}
	return opp, nil
}

// Update modifies opportunity details. Stage changes go through UpdateStage.
func (s *OpportunityService) Update(ctx context.Context, id int64, req models.OpportunityRequest) (*models.Opportunity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "opportunity")
	}
	if err := s.ensureLead(ctx, req.LeadID); err != nil {
		return nil, err
	}
	applyOpportunityRequest(opp, req)
	if err := s.repo.Update(ctx, opp); err != nil {
		return nil, writeError(err, "update", "opportunity")
	}
	return opp, nil
}

// Delete removes an opportunity.
func (s *OpportunityService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "opportunity")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "opportunity")
	}
	return nil
}

// UpdateStage advances an opportunity through the pipeline.
func (s *OpportunityService) UpdateStage(ctx context.Context, id int64, req models.OpportunityStageRequest) (*models.Opportunity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "opportunity")
	}
	if !opp.Stage.CanTransitionTo(req.Stage) {
		return nil, invalidTransition("opportunity stage", opp.Stage, req.Stage)
	}
	if err := s.repo.UpdateStage(ctx, id, opp.Stage, req.Stage); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "opportunity stage changed concurrently")
		}
		return nil, writeError(err, "update", "opportunity stage")
	}
	opp.Stage = req.Stage
	opp.UpdatedAt = time.Now().UTC()
	return opp, nil
}

// Pipeline summarises opportunities per stage, in pipeline order.
func (s *OpportunityService) Pipeline(ctx context.Context) (*models.PipelineSummary, error) {
	totals, err := s.repo.TotalsByStage(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to summarise pipeline")
	}
	byStage := make(map[models.OpportunityStage]models.PipelineStageTotal, len(totals))
	for _, t := range totals {
		byStage[t.Stage] = t
	}

	summary := &models.PipelineSummary{Stages: make([]models.PipelineStageTotal, 0, len(models.PipelineStages))}
	var won int
	for _, stage := range models.PipelineStages {
		t := byStage[stage]
		t.Stage = stage
		t.Value = round2(t.Value)
		summary.Stages = append(summary.Stages, t)
		switch {
		case stage == models.StageClosedWon:
			won = t.Count
			summary.WonValue = t.Value
			summary.TotalClosed += t.Count
		case stage.Closed():
			summary.TotalClosed += t.Count
		default:
			summary.TotalOpen += t.Count
			summary.OpenValue += t.Value
		}
	}
	summary.OpenValue = round2(summary.OpenValue)
	summary.WinRate = percentage(won, summary.TotalClosed)
	return summary, nil
}

func (s *OpportunityService) ensureLead(ctx context.Context, leadID *int64) error {
	if leadID == nil {
		return nil
	}
	if _, err := s.leads.FindByID(ctx, *leadID); err != nil {
		return lookupError(err, "lead")
	}
	return nil
}

func applyOpportunityRequest(opp *models.Opportunity, req models.OpportunityRequest) {
	opp.LeadID = req.LeadID
	opp.Title = strings.TrimSpace(req.Title)
	opp.Value = round2(req.Value)
	opp.ExpectedCloseDate = req.ExpectedCloseDate
	opp.Notes = req.Notes
}
