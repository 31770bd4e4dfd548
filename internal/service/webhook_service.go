package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/pkg/jobs"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
	"github.com/noah-isme/lingua-center-api/pkg/webhook"
)

// JobTypeWebhook tags jobs on the webhooks queue.
const JobTypeWebhook = "webhook"

type webhookRepository interface {
	List(ctx context.Context) ([]models.WebhookSubscription, error)
	ListActive(ctx context.Context) ([]models.WebhookSubscription, error)
	Create(ctx context.Context, sub *models.WebhookSubscription) error
	Delete(ctx context.Context, id int64) error
}

type webhookSender interface {
	Send(ctx context.Context, d webhook.Delivery) error
}

// WebhookService manages subscriptions and fans domain events out to them.
type WebhookService struct {
	repo      webhookRepository
	queue     jobDispatcher
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewWebhookService constructs the webhook service.
func NewWebhookService(repo webhookRepository, queue jobDispatcher, validator *validation.Validator, logger *zap.Logger) *WebhookService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{repo: repo, queue: queue, validator: validator, logger: logger, now: time.Now}
}

// List returns all subscriptions.
func (s *WebhookService) List(ctx context.Context) ([]models.WebhookSubscription, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, lookupError(err, "webhook subscriptions")
	}
	return subs, nil
}

// Create registers a subscription. The secret is returned only here.
func (s *WebhookService) Create(ctx context.Context, req models.WebhookSubscriptionRequest) (*models.WebhookSubscriptionCreated, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	secret := req.Secret
	if secret == "" {
		secret = generateSecret()
	}
	sub := &models.WebhookSubscription{
		URL:    strings.TrimSpace(req.URL),
		Secret: secret,
		Events: dedupe(req.Events),
		Active: true,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, writeError(err, "create", "webhook subscription")
	}
	s.logger.Info("webhook subscription created", zap.Int64("subscription_id", sub.ID), zap.Strings("events", sub.Events))
	return &models.WebhookSubscriptionCreated{WebhookSubscription: *sub, Secret: secret}, nil
}

// Delete removes a subscription.
func (s *WebhookService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "webhook subscription")
	}
	return nil
}

// Publish implements EventPublisher by queueing one delivery per interested subscriber.
// Failures are logged; the originating write has already committed.
func (s *WebhookService) Publish(ctx context.Context, event string, data interface{}) {
	subs, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Warn("failed to load webhook subscribers", zap.String("event", event), zap.Error(err))
		return
	}
	var body []byte
	for _, sub := range subs {
		if !sub.Subscribes(event) {
			continue
		}
		if body == nil {
			body, err = json.Marshal(models.WebhookEnvelope{
				ID:         uuid.NewString(),
				Event:      event,
				OccurredAt: s.now().UTC(),
				Data:       data,
			})
			if err != nil {
				s.logger.Error("failed to encode webhook event", zap.String("event", event), zap.Error(err))
				return
			}
		}
		delivery := webhook.Delivery{
			ID:     uuid.NewString(),
			URL:    sub.URL,
			Event:  event,
			Secret: sub.Secret,
			Body:   body,
		}
		if err := s.queue.Enqueue(jobs.Job{ID: delivery.ID, Type: JobTypeWebhook, Payload: delivery}); err != nil {
			s.logger.Warn("failed to enqueue webhook delivery", zap.Int64("subscription_id", sub.ID), zap.String("event", event), zap.Error(err))
		}
	}
}

// WebhookWorker posts queued deliveries.
type WebhookWorker struct {
	sender webhookSender
	logger *zap.Logger
}

// NewWebhookWorker constructs the worker.
func NewWebhookWorker(sender webhookSender, logger *zap.Logger) *WebhookWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookWorker{sender: sender, logger: logger}
}

// Handle sends one delivery. Returned errors make the queue retry.
func (w *WebhookWorker) Handle(ctx context.Context, job jobs.Job) error {
	delivery, ok := job.Payload.(webhook.Delivery)
	if !ok {
		w.logger.Error("unexpected webhook payload", zap.String("job_id", job.ID))
		return nil
	}
	if err := w.sender.Send(ctx, delivery); err != nil {
		return fmt.Errorf("deliver %s to %s: %w", delivery.Event, delivery.URL, err)
	}
	w.logger.Debug("webhook delivered", zap.String("delivery_id", delivery.ID), zap.String("event", delivery.Event))
	return nil
}

func generateSecret() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
