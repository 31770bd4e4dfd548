package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const (
	templateColumns     = "id, code, channel, subject, body, created_at, updated_at"
	notificationColumns = "id, template_code, channel, recipient, subject, body, variables, status, scheduled_at, sent_at, error, created_by, created_at"
)

// NotificationRepository stores message templates and the outbound notification log.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// ListTemplates returns every template ordered by code.
func (r *NotificationRepository) ListTemplates(ctx context.Context) ([]models.NotificationTemplate, error) {
	var templates []models.NotificationTemplate
	if err := r.db.SelectContext(ctx, &templates, "SELECT "+templateColumns+" FROM notification_templates ORDER BY code ASC"); err != nil {
		return nil, fmt.Errorf("list notification templates: %w", err)
	}
	return templates, nil
}

// FindTemplateByID loads a template by id.
func (r *NotificationRepository) FindTemplateByID(ctx context.Context, id int64) (*models.NotificationTemplate, error) {
	var tpl models.NotificationTemplate
	if err := r.db.GetContext(ctx, &tpl, "SELECT "+templateColumns+" FROM notification_templates WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// FindTemplateByCode loads a template by its unique code.
func (r *NotificationRepository) FindTemplateByCode(ctx context.Context, code string) (*models.NotificationTemplate, error) {
	var tpl models.NotificationTemplate
	if err := r.db.GetContext(ctx, &tpl, "SELECT "+templateColumns+" FROM notification_templates WHERE code = $1", code); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// TemplateCodeExists reports whether another template already uses code.
func (r *NotificationRepository) TemplateCodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS(SELECT 1 FROM notification_templates WHERE code = $1 AND id <> $2)`
	if err := r.db.GetContext(ctx, &exists, query, code, excludeID); err != nil {
		return false, fmt.Errorf("check template code: %w", err)
	}
	return exists, nil
}

// CreateTemplate inserts a template and assigns its id.
func (r *NotificationRepository) CreateTemplate(ctx context.Context, tpl *models.NotificationTemplate) error {
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	const query = `INSERT INTO notification_templates (code, channel, subject, body, created_at, updated_at)
        VALUES (:code, :channel, :subject, :body, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, r.db, query, tpl)
	if err != nil {
		return fmt.Errorf("create notification template: %w", err)
	}
	tpl.ID = id
	return nil
}

// UpdateTemplate persists template changes.
func (r *NotificationRepository) UpdateTemplate(ctx context.Context, tpl *models.NotificationTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()
	const query = `UPDATE notification_templates SET code = :code, channel = :channel, subject = :subject, body = :body, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, tpl)
	if err != nil {
		return fmt.Errorf("update notification template: %w", translatePQ(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTemplate removes a template.
func (r *NotificationRepository) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notification_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateBatch inserts notifications atomically.
func (r *NotificationRepository) CreateBatch(ctx context.Context, items []models.Notification) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		if items[i].Variables == nil {
			items[i].Variables = models.Variables{}
		}
	}
	const query = `INSERT INTO notifications (id, template_code, channel, recipient, subject, body, variables, status, scheduled_at, sent_at, error, created_by, created_at)
        VALUES (:id, :template_code, :channel, :recipient, :subject, :body, :variables, :status, :scheduled_at, :sent_at, :error, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, items); err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}
	return nil
}

// FindByID loads one notification.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.GetContext(ctx, &n, "SELECT "+notificationColumns+" FROM notifications WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns the notification log newest first.
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	var w where
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	if filter.Channel != nil {
		w.add("channel = $%d", *filter.Channel)
	}
	if filter.Recipient != "" {
		w.add("LOWER(recipient) LIKE $%d ESCAPE '\\'", likePattern(filter.Recipient))
	}
	base := "FROM notifications " + w.String()
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC, id ASC %s", notificationColumns, base, pageClause(filter.PageRequest))

	var items []models.Notification
	if err := r.db.SelectContext(ctx, &items, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	total, err := count(ctx, r.db, "SELECT COUNT(*) "+base, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	return items, total, nil
}

// ClaimDue promotes scheduled notifications whose time has come to QUEUED and returns them.
func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `UPDATE notifications SET status = 'QUEUED'
WHERE id IN (SELECT id FROM notifications WHERE status = 'SCHEDULED' AND scheduled_at <= $1 ORDER BY scheduled_at ASC LIMIT $2 FOR UPDATE SKIP LOCKED)
RETURNING ` + notificationColumns
	var items []models.Notification
	if err := r.db.SelectContext(ctx, &items, query, now, limit); err != nil {
		return nil, fmt.Errorf("claim due notifications: %w", err)
	}
	return items, nil
}

// MarkSent records a successful delivery.
func (r *NotificationRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE notifications SET status = 'SENT', sent_at = $2, error = NULL WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed records a delivery failure.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id, reason string) error {
	const query = `UPDATE notifications SET status = 'FAILED', error = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, reason); err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	return nil
}

// Cancel cancels a notification that has not been delivered yet.
func (r *NotificationRepository) Cancel(ctx context.Context, id string) error {
	const query = `UPDATE notifications SET status = 'CANCELLED' WHERE id = $1 AND status IN ('SCHEDULED', 'QUEUED')`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleStatus
	}
	return nil
}
