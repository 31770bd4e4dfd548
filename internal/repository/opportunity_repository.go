package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const opportunityColumns = "o.id, o.lead_id, o.title, o.value, o.stage, o.expected_close_date, o.notes, o.created_at, o.updated_at"

// OpportunityRepository persists CRM opportunities.
type OpportunityRepository struct {
	db *sqlx.DB
}

// NewOpportunityRepository constructs an OpportunityRepository.
func NewOpportunityRepository(db *sqlx.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// List returns a page of opportunities, newest first.
func (r *OpportunityRepository) List(ctx context.Context, filter models.OpportunityFilter) ([]models.Opportunity, int, error) {
	var w where
	if filter.Stage != nil {
		w.add("o.stage = $%d", *filter.Stage)
	}
	if filter.LeadID != nil {
		w.add("o.lead_id = $%d", *filter.LeadID)
	}
	base := "FROM opportunities o " + w.String()

	query := fmt.Sprintf("SELECT %s %s ORDER BY o.id DESC %s", opportunityColumns, base, pageClause(filter.PageRequest))
	var opportunities []models.Opportunity
	if err := r.db.SelectContext(ctx, &opportunities, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list opportunities: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count opportunities: %w", err)
	}
	return opportunities, total, nil
}

// FindByID fetches an opportunity.
func (r *OpportunityRepository) FindByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	query := fmt.Sprintf("SELECT %s FROM opportunities o WHERE o.id = $1", opportunityColumns)
	var opportunity models.Opportunity
	if err := r.db.GetContext(ctx, &opportunity, query, id); err != nil {
		return nil, err
	}
	return &opportunity, nil
}

// Create inserts an opportunity.
func (r *OpportunityRepository) Create(ctx context.Context, opportunity *models.Opportunity) error {
	now := time.Now().UTC()
	opportunity.CreatedAt = now
	opportunity.UpdatedAt = now
	const query = `INSERT INTO opportunities (lead_id, title, value, stage, expected_close_date, notes, created_at, updated_at)
        VALUES (:lead_id, :title, :value, :stage, :expected_close_date, :notes, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, opportunity)
	if err != nil {
		return fmt.Errorf("create opportunity: %w", err)
	}
	opportunity.ID = id
	return nil
}

// Update modifies the descriptive fields of an opportunity.
func (r *OpportunityRepository) Update(ctx context.Context, opportunity *models.Opportunity) error {
	opportunity.UpdatedAt = time.Now().UTC()
	const query = `UPDATE opportunities SET lead_id = :lead_id, title = :title, value = :value,
        expected_close_date = :expected_close_date, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, opportunity); err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	return nil
}

// UpdateStage moves an opportunity between stages. ErrStaleStatus is returned if it is no longer in from.
func (r *OpportunityRepository) UpdateStage(ctx context.Context, id int64, from, to models.OpportunityStage) error {
	res, err := r.db.ExecContext(ctx, `UPDATE opportunities SET stage = $3, updated_at = $4 WHERE id = $1 AND stage = $2`, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update opportunity stage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleStatus
	}
	return nil
}

// Delete removes an opportunity, returning sql.ErrNoRows when absent.
func (r *OpportunityRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TotalsByStage returns count and value per pipeline stage.
func (r *OpportunityRepository) TotalsByStage(ctx context.Context) ([]models.PipelineStageTotal, error) {
	const query = `SELECT stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS value FROM opportunities GROUP BY stage`
	var totals []models.PipelineStageTotal
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("sum opportunities by stage: %w", err)
	}
	return totals, nil
}
