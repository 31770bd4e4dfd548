package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/jobs"
	"github.com/noah-isme/lingua-center-api/pkg/notify"
)

type fakeNotificationRepo struct {
	templates     map[string]*models.NotificationTemplate
	notifications map[string]*models.Notification
	templateReads int
	due           []models.Notification
	seq           int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{templates: map[string]*models.NotificationTemplate{}, notifications: map[string]*models.Notification{}}
}

func (f *fakeNotificationRepo) ListTemplates(context.Context) ([]models.NotificationTemplate, error) {
	out := []models.NotificationTemplate{}
	for _, t := range f.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeNotificationRepo) FindTemplateByID(_ context.Context, id int64) (*models.NotificationTemplate, error) {
	for _, t := range f.templates {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeNotificationRepo) FindTemplateByCode(_ context.Context, code string) (*models.NotificationTemplate, error) {
	f.templateReads++
	t, ok := f.templates[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeNotificationRepo) TemplateCodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	t, ok := f.templates[code]
	return ok && t.ID != excludeID, nil
}

func (f *fakeNotificationRepo) CreateTemplate(_ context.Context, tpl *models.NotificationTemplate) error {
	f.seq++
	tpl.ID = int64(f.seq)
	cp := *tpl
	f.templates[tpl.Code] = &cp
	return nil
}

func (f *fakeNotificationRepo) UpdateTemplate(_ context.Context, tpl *models.NotificationTemplate) error {
	for code, t := range f.templates {
		if t.ID == tpl.ID {
			delete(f.templates, code)
		}
	}
	cp := *tpl
	f.templates[tpl.Code] = &cp
	return nil
}

func (f *fakeNotificationRepo) DeleteTemplate(_ context.Context, id int64) error {
	for code, t := range f.templates {
		if t.ID == id {
			delete(f.templates, code)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, items []models.Notification) error {
	for i := range items {
		f.seq++
		items[i].ID = fmt.Sprintf("n-%d", f.seq)
		cp := items[i]
		f.notifications[cp.ID] = &cp
	}
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id string) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotificationRepo) List(context.Context, models.NotificationFilter) ([]models.Notification, int, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) ClaimDue(context.Context, time.Time, int) ([]models.Notification, error) {
	return f.due, nil
}

func (f *fakeNotificationRepo) MarkSent(_ context.Context, id string, at time.Time) error {
	f.notifications[id].Status = models.NotificationSent
	f.notifications[id].SentAt = &at
	return nil
}

func (f *fakeNotificationRepo) MarkFailed(_ context.Context, id, reason string) error {
	f.notifications[id].Status = models.NotificationFailed
	f.notifications[id].Error = &reason
	return nil
}

func (f *fakeNotificationRepo) Cancel(_ context.Context, id string) error {
	n := f.notifications[id]
	if n.Status != models.NotificationScheduled && n.Status != models.NotificationQueued {
		return repository.ErrStaleStatus
	}
	n.Status = models.NotificationCancelled
	return nil
}

type recordingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type failingSender struct{ err error }

func (s failingSender) Send(context.Context, notify.Message) error { return s.err }

func newNotificationFixture(cache *memCache) (*NotificationService, *fakeNotificationRepo, *recordingQueue) {
	repo := newFakeNotificationRepo()
	queue := &recordingQueue{}
	params := NotificationServiceParams{Repo: repo, Queue: queue, Logger: zap.NewNop()}
	if cache != nil {
		params.Cache = NewCacheService(cache, nil, "lingua", time.Minute, zap.NewNop())
	}
	svc := NewNotificationService(params)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, queue
}

func strPtr(s string) *string { return &s }

func TestNotificationSendQueuesEachRecipient(t *testing.T) {
	svc, repo, queue := newNotificationFixture(nil)
	repo.templates["welcome"] = &models.NotificationTemplate{ID: 1, Code: "welcome", Channel: models.ChannelEmail, Subject: "Hi {{.name}}", Body: "Welcome to {{.course}}"}

	batch, err := svc.Send(context.Background(), models.SendNotificationRequest{
		Channel:      models.ChannelEmail,
		Recipients:   []string{"a@example.com", "b@example.com"},
		TemplateCode: strPtr("welcome"),
		Variables:    models.Variables{"name": "Ana", "course": "IELTS"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationQueued, batch.Status)
	require.Len(t, batch.Notifications, 2)
	require.Len(t, queue.jobs, 2)
	assert.Equal(t, JobTypeNotification, queue.jobs[0].Type)
	assert.Equal(t, "Hi {{.name}}", repo.notifications[queue.jobs[0].ID].Subject)
}

func TestNotificationSendRequiresBodyOrTemplate(t *testing.T) {
	svc, _, queue := newNotificationFixture(nil)

	_, err := svc.Send(context.Background(), models.SendNotificationRequest{
		Channel:    models.ChannelSMS,
		Recipients: []string{"+15550100"},
	}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "body")
	assert.Empty(t, queue.jobs)
}

func TestNotificationSendRejectsMissingVariable(t *testing.T) {
	svc, _, _ := newNotificationFixture(nil)

	_, err := svc.Send(context.Background(), models.SendNotificationRequest{
		Channel:    models.ChannelSMS,
		Recipients: []string{"+15550100"},
		Body:       "Class moved to {{.room}}",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNotificationSendRejectsChannelMismatch(t *testing.T) {
	svc, repo, _ := newNotificationFixture(nil)
	repo.templates["sms-reminder"] = &models.NotificationTemplate{ID: 1, Code: "sms-reminder", Channel: models.ChannelSMS, Body: "Reminder"}

	_, err := svc.Send(context.Background(), models.SendNotificationRequest{
		Channel:      models.ChannelEmail,
		Recipients:   []string{"a@example.com"},
		TemplateCode: strPtr("sms-reminder"),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "channel")
}

func TestNotificationTemplateLookupIsCached(t *testing.T) {
	svc, repo, _ := newNotificationFixture(newMemCache())
	repo.templates["welcome"] = &models.NotificationTemplate{ID: 1, Code: "welcome", Channel: models.ChannelSMS, Body: "Hello"}
	req := models.SendNotificationRequest{Channel: models.ChannelSMS, Recipients: []string{"+1"}, TemplateCode: strPtr("welcome")}

	_, err := svc.Send(context.Background(), req, nil)
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.templateReads)

	_, err = svc.UpdateTemplate(context.Background(), 1, models.NotificationTemplateRequest{Code: "welcome", Channel: models.ChannelSMS, Body: "Hello again"})
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.templateReads)
}

func TestNotificationScheduleRequiresFutureTime(t *testing.T) {
	svc, _, _ := newNotificationFixture(nil)
	past := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.Schedule(context.Background(), models.SendNotificationRequest{
		Channel: models.ChannelSMS, Recipients: []string{"+1"}, Body: "x", SendAt: &past,
	}, nil)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "sendAt")
}

func TestNotificationScheduleStoresWithoutEnqueue(t *testing.T) {
	svc, repo, queue := newNotificationFixture(nil)
	at := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	batch, err := svc.Schedule(context.Background(), models.SendNotificationRequest{
		Channel: models.ChannelSMS, Recipients: []string{"+1"}, Body: "Tomorrow", SendAt: &at,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationScheduled, batch.Status)
	assert.Empty(t, queue.jobs)
	stored := repo.notifications[batch.Notifications[0].ID]
	require.NotNil(t, stored.ScheduledAt)
	assert.True(t, stored.ScheduledAt.Equal(at))
}

func TestNotificationPromoteDueEnqueues(t *testing.T) {
	svc, repo, queue := newNotificationFixture(nil)
	repo.due = []models.Notification{{ID: "n-1"}, {ID: "n-2"}}

	require.NoError(t, svc.PromoteDue(context.Background(), time.Now()))
	require.Len(t, queue.jobs, 2)
	assert.Equal(t, "n-2", queue.jobs[1].ID)
}

func TestNotificationCancelSentIsRejected(t *testing.T) {
	svc, repo, _ := newNotificationFixture(nil)
	repo.notifications["n-9"] = &models.Notification{ID: "n-9", Status: models.NotificationSent}

	err := svc.Cancel(context.Background(), "n-9")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.Cancel(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationWorkerRendersAndMarksSent(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.notifications["n-1"] = &models.Notification{
		ID: "n-1", Channel: models.ChannelSMS, Recipient: "+1", Status: models.NotificationQueued,
		Body: "Hi {{.name}}", Variables: models.Variables{"name": "Ana"},
	}
	sms := notify.NewLogSender("SMS", zap.NewNop())
	worker := NewNotificationWorker(repo, map[models.NotificationChannel]notify.Sender{models.ChannelSMS: sms}, zap.NewNop())

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: "n-1"}))
	assert.Equal(t, models.NotificationSent, repo.notifications["n-1"].Status)
	require.Len(t, sms.Sent(), 1)
	assert.Equal(t, "Hi Ana", sms.Sent()[0].Body)
}

func TestNotificationWorkerMarksFailedAndRetries(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.notifications["n-1"] = &models.Notification{ID: "n-1", Channel: models.ChannelEmail, Recipient: "a@example.com", Status: models.NotificationQueued, Body: "x"}
	worker := NewNotificationWorker(repo, map[models.NotificationChannel]notify.Sender{models.ChannelEmail: failingSender{err: errors.New("smtp down")}}, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "n-1"})
	require.Error(t, err)
	assert.Equal(t, models.NotificationFailed, repo.notifications["n-1"].Status)
	assert.Equal(t, "smtp down", *repo.notifications["n-1"].Error)
}

func TestNotificationWorkerSkipsCancelled(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.notifications["n-1"] = &models.Notification{ID: "n-1", Channel: models.ChannelSMS, Status: models.NotificationCancelled, Body: "x"}
	sms := notify.NewLogSender("SMS", zap.NewNop())
	worker := NewNotificationWorker(repo, map[models.NotificationChannel]notify.Sender{models.ChannelSMS: sms}, zap.NewNop())

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: "n-1"}))
	assert.Empty(t, sms.Sent())
	assert.Equal(t, models.NotificationCancelled, repo.notifications["n-1"].Status)
}
