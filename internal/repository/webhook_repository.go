package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const webhookColumns = "id, url, secret, events, active, created_at"

// WebhookRepository stores outbound webhook subscriptions.
type WebhookRepository struct {
	db *sqlx.DB
}

// NewWebhookRepository constructs the repository.
func NewWebhookRepository(db *sqlx.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

// List returns every subscription.
func (r *WebhookRepository) List(ctx context.Context) ([]models.WebhookSubscription, error) {
	var subs []models.WebhookSubscription
	if err := r.db.SelectContext(ctx, &subs, "SELECT "+webhookColumns+" FROM webhook_subscriptions ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list webhook subscriptions: %w", err)
	}
	return subs, nil
}

// ListActive returns subscriptions eligible for delivery.
func (r *WebhookRepository) ListActive(ctx context.Context) ([]models.WebhookSubscription, error) {
	var subs []models.WebhookSubscription
	if err := r.db.SelectContext(ctx, &subs, "SELECT "+webhookColumns+" FROM webhook_subscriptions WHERE active ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list active webhook subscriptions: %w", err)
	}
	return subs, nil
}

// FindByID loads a subscription.
func (r *WebhookRepository) FindByID(ctx context.Context, id int64) (*models.WebhookSubscription, error) {
	var sub models.WebhookSubscription
	if err := r.db.GetContext(ctx, &sub, "SELECT "+webhookColumns+" FROM webhook_subscriptions WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create inserts a subscription and assigns its id.
func (r *WebhookRepository) Create(ctx context.Context, sub *models.WebhookSubscription) error {
	sub.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO webhook_subscriptions (url, secret, events, active, created_at)
        VALUES (:url, :secret, :events, :active, :created_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, sub)
	if err != nil {
		return fmt.Errorf("create webhook subscription: %w", err)
	}
	sub.ID = id
	return nil
}

// Delete removes a subscription.
func (r *WebhookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM webhook_subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete webhook subscription: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
