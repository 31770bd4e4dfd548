package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/jobs"
	"github.com/noah-isme/lingua-center-api/pkg/notify"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

// JobTypeNotification tags jobs on the notifications queue.
const JobTypeNotification = "notification"

type notificationRepository interface {
	ListTemplates(ctx context.Context) ([]models.NotificationTemplate, error)
	FindTemplateByID(ctx context.Context, id int64) (*models.NotificationTemplate, error)
	FindTemplateByCode(ctx context.Context, code string) (*models.NotificationTemplate, error)
	TemplateCodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	CreateTemplate(ctx context.Context, tpl *models.NotificationTemplate) error
	UpdateTemplate(ctx context.Context, tpl *models.NotificationTemplate) error
	DeleteTemplate(ctx context.Context, id int64) error
	CreateBatch(ctx context.Context, items []models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]models.Notification, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error
	Cancel(ctx context.Context, id string) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// NotificationServiceParams groups constructor dependencies.
type NotificationServiceParams struct {
	Repo        notificationRepository
	Queue       jobDispatcher
	Cache       *CacheService
	TemplateTTL time.Duration
	Validator   *validation.Validator
	Logger      *zap.Logger
}

// NotificationService manages templates and accepts messages for delivery.
type NotificationService struct {
	repo        notificationRepository
	queue       jobDispatcher
	cache       *CacheService
	templateTTL time.Duration
	validator   *validation.Validator
	logger      *zap.Logger
	now         func() time.Time
}

// NewNotificationService constructs the notification service.
func NewNotificationService(params NotificationServiceParams) *NotificationService {
	validator := params.Validator
	if validator == nil {
		validator = validation.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.TemplateTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &NotificationService{
		repo:        params.Repo,
		queue:       params.Queue,
		cache:       params.Cache,
		templateTTL: ttl,
		validator:   validator,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListTemplates returns every template ordered by code.
func (s *NotificationService) ListTemplates(ctx context.Context) ([]models.NotificationTemplate, error) {
	items, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list notification templates")
	}
	if items == nil {
		items = []models.NotificationTemplate{}
	}
	return items, nil
}

// GetTemplate returns a template by id.
func (s *NotificationService) GetTemplate(ctx context.Context, id int64) (*models.NotificationTemplate, error) {
	tpl, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification template")
	}
	return tpl, nil
}

// CreateTemplate stores a new template after checking it parses.
func (s *NotificationService) CreateTemplate(ctx context.Context, req models.NotificationTemplateRequest) (*models.NotificationTemplate, error) {
	req.Code = strings.TrimSpace(req.Code)
	if err := s.checkTemplate(ctx, req, 0); err != nil {
		return nil, err
	}
	tpl := &models.NotificationTemplate{Code: req.Code, Channel: req.Channel, Subject: req.Subject, Body: req.Body}
	if err := s.repo.CreateTemplate(ctx, tpl); err != nil {
		return nil, writeError(err, "create", "notification template")
	}
	return tpl, nil
}

// UpdateTemplate replaces a template and evicts its cached copy.
func (s *NotificationService) UpdateTemplate(ctx context.Context, id int64, req models.NotificationTemplateRequest) (*models.NotificationTemplate, error) {
	req.Code = strings.TrimSpace(req.Code)
	tpl, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification template")
	}
	if err := s.checkTemplate(ctx, req, id); err != nil {
		return nil, err
	}
	previous := tpl.Code
	tpl.Code = req.Code
	tpl.Channel = req.Channel
	tpl.Subject = req.Subject
	tpl.Body = req.Body
	if err := s.repo.UpdateTemplate(ctx, tpl); err != nil {
		return nil, writeError(err, "update", "notification template")
	}
	s.cache.EvictTemplates(ctx, previous, tpl.Code)
	return tpl, nil
}

// DeleteTemplate removes a template and evicts its cached copy.
func (s *NotificationService) DeleteTemplate(ctx context.Context, id int64) error {
	tpl, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return lookupError(err, "notification template")
	}
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		return writeError(err, "delete", "notification template")
	}
	s.cache.EvictTemplates(ctx, tpl.Code)
	return nil
}

// List returns the notification log.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) (models.PagedResult[models.Notification], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.Notification]{}, appErrors.Internal(err, "failed to list notifications")
	}
	return models.NewPagedResult(items, total, filter.PageRequest), nil
}

// Get returns one notification.
func (s *NotificationService) Get(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification")
	}
	return n, nil
}

// Send queues one notification per recipient for immediate delivery.
func (s *NotificationService) Send(ctx context.Context, req models.SendNotificationRequest, actorID *int64) (*models.NotificationBatch, error) {
	req.SendAt = nil
	return s.accept(ctx, req, actorID)
}

// Schedule stores one notification per recipient for delivery at SendAt.
func (s *NotificationService) Schedule(ctx context.Context, req models.SendNotificationRequest, actorID *int64) (*models.NotificationBatch, error) {
	if req.SendAt == nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "sendAt is required", map[string]string{"sendAt": "sendAt is a required field"})
	}
	if !req.SendAt.After(s.now()) {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "sendAt must be in the future", map[string]string{"sendAt": "sendAt must be in the future"})
	}
	return s.accept(ctx, req, actorID)
}

// Cancel stops a notification that has not been delivered yet.
func (s *NotificationService) Cancel(ctx context.Context, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "notification")
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return appErrors.WithDetails(appErrors.ErrValidation,
				fmt.Sprintf("notification in status %s cannot be cancelled", n.Status),
				map[string]string{"status": string(n.Status)})
		}
		return appErrors.Internal(err, "failed to cancel notification")
	}
	s.logger.Info("notification cancelled", zap.String("notification_id", id))
	return nil
}

// PromoteDue queues scheduled notifications whose time has come. It runs as a scheduler task.
func (s *NotificationService) PromoteDue(ctx context.Context, now time.Time) error {
	due, err := s.repo.ClaimDue(ctx, now.UTC(), 100)
	if err != nil {
		return err
	}
	for _, n := range due {
		s.enqueue(ctx, n.ID)
	}
	if len(due) > 0 {
		s.logger.Info("scheduled notifications promoted", zap.Int("count", len(due)))
	}
	return nil
}

func (s *NotificationService) accept(ctx context.Context, req models.SendNotificationRequest, actorID *int64) (*models.NotificationBatch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	subject, body, err := s.resolveContent(ctx, req)
	if err != nil {
		return nil, err
	}

	status := models.NotificationQueued
	if req.SendAt != nil {
		status = models.NotificationScheduled
	}
	items := make([]models.Notification, 0, len(req.Recipients))
	for _, recipient := range req.Recipients {
		n := models.Notification{
			TemplateCode: req.TemplateCode,
			Channel:      req.Channel,
			Recipient:    strings.TrimSpace(recipient),
			Subject:      subject,
			Body:         body,
			Variables:    req.Variables,
			Status:       status,
			CreatedBy:    actorID,
		}
		if req.SendAt != nil {
			at := req.SendAt.UTC()
			n.ScheduledAt = &at
		}
		items = append(items, n)
	}
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, appErrors.Internal(err, "failed to store notifications")
	}
	if status == models.NotificationQueued {
		for _, n := range items {
			s.enqueue(ctx, n.ID)
		}
	}
	s.logger.Info("notifications accepted", zap.Int("count", len(items)), zap.String("status", string(status)), zap.String("channel", string(req.Channel)))
	return &models.NotificationBatch{Status: status, Notifications: items}, nil
}

// resolveContent picks the template or raw subject/body and checks it renders.
func (s *NotificationService) resolveContent(ctx context.Context, req models.SendNotificationRequest) (string, string, error) {
	subject, body := req.Subject, req.Body
	if req.TemplateCode != nil && strings.TrimSpace(*req.TemplateCode) != "" {
		tpl, err := s.templateByCode(ctx, strings.TrimSpace(*req.TemplateCode))
		if err != nil {
			return "", "", err
		}
		if tpl.Channel != req.Channel {
			return "", "", appErrors.WithDetails(appErrors.ErrValidation,
				fmt.Sprintf("template %s is for channel %s", tpl.Code, tpl.Channel),
				map[string]string{"channel": "channel must match the template channel"})
		}
		subject, body = tpl.Subject, tpl.Body
	}
	if strings.TrimSpace(body) == "" {
		return "", "", appErrors.WithDetails(appErrors.ErrValidation, "either templateCode or body is required",
			map[string]string{"body": "body is required when templateCode is empty"})
	}
	if _, _, err := renderMessage(subject, body, req.Variables); err != nil {
		return "", "", appErrors.WithDetails(appErrors.ErrValidation, "message does not render",
			map[string]string{"body": err.Error()})
	}
	return subject, body, nil
}

func (s *NotificationService) templateByCode(ctx context.Context, code string) (*models.NotificationTemplate, error) {
	key := s.cache.TemplateKey(code)
	var cached models.NotificationTemplate
	if s.cache.Load(ctx, key, &cached) {
		return &cached, nil
	}
	tpl, err := s.repo.FindTemplateByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.WithDetails(appErrors.ErrValidation, "unknown template code "+code,
				map[string]string{"templateCode": "template does not exist"})
		}
		return nil, appErrors.Internal(err, "failed to load notification template")
	}
	s.cache.Store(ctx, key, tpl, s.templateTTL)
	return tpl, nil
}

func (s *NotificationService) checkTemplate(ctx context.Context, req models.NotificationTemplateRequest, excludeID int64) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	if _, err := template.New("subject").Parse(req.Subject); err != nil {
		return appErrors.WithDetails(appErrors.ErrValidation, "subject is not a valid template", map[string]string{"subject": err.Error()})
	}
	if _, err := template.New("body").Parse(req.Body); err != nil {
		return appErrors.WithDetails(appErrors.ErrValidation, "body is not a valid template", map[string]string{"body": err.Error()})
	}
	exists, err := s.repo.TemplateCodeExists(ctx, req.Code, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check template code")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "template code already exists")
	}
	return nil
}

func (s *NotificationService) enqueue(ctx context.Context, id string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: id, Type: JobTypeNotification}); err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("notification_id", id), zap.Error(err))
		if markErr := s.repo.MarkFailed(ctx, id, "enqueue failed: "+err.Error()); markErr != nil {
			s.logger.Warn("failed to mark notification failed", zap.String("notification_id", id), zap.Error(markErr))
		}
	}
}

// renderMessage executes subject and body as text/template with vars. Missing keys are errors.
func renderMessage(subject, body string, vars models.Variables) (string, string, error) {
	if vars == nil {
		vars = models.Variables{}
	}
	render := func(name, text string) (string, error) {
		tpl, err := template.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := tpl.Execute(&buf, map[string]string(vars)); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	renderedSubject, err := render("subject", subject)
	if err != nil {
		return "", "", err
	}
	renderedBody, err := render("body", body)
	if err != nil {
		return "", "", err
	}
	return renderedSubject, renderedBody, nil
}

// NotificationWorker delivers queued notifications.
type NotificationWorker struct {
	repo    notificationRepository
	senders map[models.NotificationChannel]notify.Sender
	logger  *zap.Logger
	now     func() time.Time
}

// NewNotificationWorker constructs a worker with one sender per channel.
func NewNotificationWorker(repo notificationRepository, senders map[models.NotificationChannel]notify.Sender, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{repo: repo, senders: senders, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Handle renders and sends one notification. Send failures are returned so the queue retries.
func (w *NotificationWorker) Handle(ctx context.Context, job jobs.Job) error {
	n, err := w.repo.FindByID(ctx, job.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			w.logger.Warn("notification vanished before delivery", zap.String("notification_id", job.ID))
			return nil
		}
		return err
	}
	switch n.Status {
	case models.NotificationQueued, models.NotificationFailed:
	default:
		w.logger.Debug("notification skipped", zap.String("notification_id", n.ID), zap.String("status", string(n.Status)))
		return nil
	}

	subject, body, err := renderMessage(n.Subject, n.Body, n.Variables)
	if err != nil {
		w.fail(ctx, n.ID, "render: "+err.Error())
		return nil
	}
	sender, ok := w.senders[n.Channel]
	if !ok {
		w.fail(ctx, n.ID, "no sender for channel "+string(n.Channel))
		return nil
	}
	if err := sender.Send(ctx, notify.Message{To: n.Recipient, Subject: subject, Body: body}); err != nil {
		w.fail(ctx, n.ID, err.Error())
		return err
	}
	if err := w.repo.MarkSent(ctx, n.ID, w.now()); err != nil {
		return err
	}
	return nil
}

func (w *NotificationWorker) fail(ctx context.Context, id, reason string) {
	if err := w.repo.MarkFailed(ctx, id, reason); err != nil {
		w.logger.Warn("failed to mark notification failed", zap.String("notification_id", id), zap.Error(err))
	}
}
