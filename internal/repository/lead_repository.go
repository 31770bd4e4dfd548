package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/database"
)

const leadColumns = "l.id, l.full_name, l.email, l.phone, l.company, l.source, l.status, l.notes, l.converted_student_id, l.created_at, l.updated_at"

// LeadRepository persists CRM leads.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository constructs a LeadRepository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// List returns a page of leads, newest first.
func (r *LeadRepository) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, int, error) {
	var w where
	if filter.Status != nil {
		w.add("l.status = $%d", *filter.Status)
	}
	if filter.Source != "" {
		w.add("LOWER(l.source) = LOWER($%d)", filter.Source)
	}
	base := "FROM leads l " + w.String()

	query := fmt.Sprintf("SELECT %s %s ORDER BY l.id DESC %s", leadColumns, base, pageClause(filter.PageRequest))
	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}
	return leads, total, nil
}

// Search performs a case-insensitive match on name, email and company.
func (r *LeadRepository) Search(ctx context.Context, term string) ([]models.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads l
        WHERE LOWER(l.full_name) LIKE $1 ESCAPE '\' OR LOWER(COALESCE(l.email, '')) LIKE $1 ESCAPE '\' OR LOWER(COALESCE(l.company, '')) LIKE $1 ESCAPE '\'
        ORDER BY l.id ASC LIMIT %d`, leadColumns, searchLimit)
	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, likePattern(term)); err != nil {
		return nil, fmt.Errorf("search leads: %w", err)
	}
	return leads, nil
}

// FindByID fetches a lead.
func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*models.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads l WHERE l.id = $1", leadColumns)
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		return nil, err
	}
	return &lead, nil
}

// Create inserts a lead.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	const query = `INSERT INTO leads (full_name, email, phone, company, source, status, notes, created_at, updated_at)
        VALUES (:full_name, :email, :phone, :company, :source, :status, :notes, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, lead)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	lead.ID = id
	return nil
}

// Update modifies the contact fields of a lead.
func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	lead.UpdatedAt = time.Now().UTC()
	const query = `UPDATE leads SET full_name = :full_name, email = :email, phone = :phone, company = :company,
        source = :source, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, lead); err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// UpdateStatus moves a lead from one status to another. ErrStaleStatus is returned if it is no longer in from.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, from, to models.LeadStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`, id, from, to, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleStatus
	}
	return nil
}

// Delete removes a lead and detaches its opportunities.
func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE opportunities SET lead_id = NULL WHERE lead_id = $1`, id); err != nil {
			return fmt.Errorf("detach lead opportunities: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete lead: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// Convert creates the student and marks the lead converted in a single transaction.
func (r *LeadRepository) Convert(ctx context.Context, lead *models.Lead, student *models.Student) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := createStudent(ctx, tx, student); err != nil {
			return err
		}
		now := time.Now().UTC()
		res, err := tx.ExecContext(ctx, `UPDATE leads SET status = $3, converted_student_id = $4, updated_at = $5 WHERE id = $1 AND status = $2`,
			lead.ID, lead.Status, models.LeadConverted, student.ID, now)
		if err != nil {
			return fmt.Errorf("mark lead converted: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrStaleStatus
		}
		lead.Status = models.LeadConverted
		lead.ConvertedStudentID = &student.ID
		lead.UpdatedAt = now
		return nil
	})
}
