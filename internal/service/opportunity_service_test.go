package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

type fakeOpportunityRepo struct {
	items  map[int64]*models.Opportunity
	nextID int64
	totals []models.PipelineStageTotal
}

func (r *fakeOpportunityRepo) List(context.Context, models.OpportunityFilter) ([]models.Opportunity, int, error) {
	return nil, 0, nil
}

func (r *fakeOpportunityRepo) FindByID(_ context.Context, id int64) (*models.Opportunity, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOpportunityRepo) Create(_ context.Context, opp *models.Opportunity) error {
	r.nextID++
	opp.ID = r.nextID
	clone := *opp
	r.items[opp.ID] = &clone
	return nil
}

func (r *fakeOpportunityRepo) Update(_ context.Context, opp *models.Opportunity) error {
	clone := *opp
	r.items[opp.ID] = &clone
	return nil
}

func (r *fakeOpportunityRepo) UpdateStage(_ context.Context, id int64, from, to models.OpportunityStage) error {
	o := r.items[id]
	if o.Stage != from {
		return repository.ErrStaleStatus
	}
	o.Stage = to
	return nil
}

func (r *fakeOpportunityRepo) Delete(_ context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

func (r *fakeOpportunityRepo) TotalsByStage(context.Context) ([]models.PipelineStageTotal, error) {
	return r.totals, nil
}

func newOpportunityFixture(items ...models.Opportunity) (*OpportunityService, *fakeOpportunityRepo) {
	repo := &fakeOpportunityRepo{items: map[int64]*models.Opportunity{}}
	for i := range items {
		o := items[i]
		repo.items[o.ID] = &o
		repo.nextID = o.ID
	}
	leads := newFakeLeadRepo(models.Lead{ID: 1, FullName: "Maria", Status: models.LeadQualified})
	return NewOpportunityService(repo, leads, nil, zap.NewNop()), repo
}

func TestOpportunityServiceCreate(t *testing.T) {
	svc, _ := newOpportunityFixture()
	leadID := int64(1)

	opp, err := svc.Create(context.Background(), models.OpportunityRequest{LeadID: &leadID, Title: "Corporate IELTS", Value: 1200.456})
	require.NoError(t, err)
	assert.Equal(t, models.StageProspect, opp.Stage)
	assert.InDelta(t, 1200.46, opp.Value, 0.0001)

	missing := int64(9)
	_, err = svc.Create(context.Background(), models.OpportunityRequest{LeadID: &missing, Title: "Ghost"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestOpportunityServiceUpdateStage(t *testing.T) {
	svc, repo := newOpportunityFixture(models.Opportunity{ID: 1, Title: "Deal", Stage: models.StageProspect})

	_, err := svc.UpdateStage(context.Background(), 1, models.OpportunityStageRequest{Stage: models.StageProposal})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)

	opp, err := svc.UpdateStage(context.Background(), 1, models.OpportunityStageRequest{Stage: models.StageQualification})
	require.NoError(t, err)
	assert.Equal(t, models.StageQualification, opp.Stage)
	assert.Equal(t, models.StageQualification, repo.items[1].Stage)

	_, err = svc.UpdateStage(context.Background(), 1, models.OpportunityStageRequest{Stage: "WON"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOpportunityServicePipeline(t *testing.T) {
	svc, repo := newOpportunityFixture()
	repo.totals = []models.PipelineStageTotal{
		{Stage: models.StageClosedWon, Count: 3, Value: 3000},
		{Stage: models.StageProspect, Count: 2, Value: 500.5},
		{Stage: models.StageNegotiation, Count: 1, Value: 800},
		{Stage: models.StageClosedLost, Count: 1, Value: 100},
	}

	summary, err := svc.Pipeline(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Stages, len(models.PipelineStages))
	assert.Equal(t, models.StageProspect, summary.Stages[0].Stage)
	assert.Equal(t, 0, summary.Stages[1].Count)
	assert.Equal(t, 3, summary.TotalOpen)
	assert.Equal(t, 4, summary.TotalClosed)
	assert.InDelta(t, 1300.5, summary.OpenValue, 0.001)
	assert.InDelta(t, 3000, summary.WonValue, 0.001)
	assert.InDelta(t, 75, summary.WinRate, 0.001)
}
