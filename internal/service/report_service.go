package service

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/export"
	"github.com/noah-isme/lingua-center-api/pkg/jobs"
	"github.com/noah-isme/lingua-center-api/pkg/storage"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

// JobTypeReport tags jobs on the reports queue.
const JobTypeReport = "report"

type reportJobStore interface {
	Create(ctx context.Context, job *models.ReportJob) error
	GetByID(ctx context.Context, id string) (*models.ReportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateReportJobParams) error
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]models.ReportJob, error)
	ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error)
}

type exportGenerator interface {
	Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error)
}

type downloadResolver interface {
	ParseToken(token string) (jobID, relPath string, err error)
	Open(relPath string) (io.ReadCloser, int64, error)
}

// ReportService orchestrates report job lifecycle management.
type ReportService struct {
	repo      reportJobStore
	queue     jobDispatcher
	files     downloadResolver
	validator *validation.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// ReportDownload is an opened report file ready to stream.
type ReportDownload struct {
	Reader      io.ReadCloser
	Size        int64
	Filename    string
	ContentType string
}

// NewReportService constructs the report service.
func NewReportService(repo reportJobStore, queue jobDispatcher, files downloadResolver, validator *validation.Validator, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validator == nil {
		validator = validation.New()
	}
	return &ReportService{
		repo:      repo,
		queue:     queue,
		files:     files,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Schedule persists a report job. Jobs without a future runAt are queued at once.
func (s *ReportService) Schedule(ctx context.Context, req models.ScheduleReportRequest, actorID *int64) (*models.ReportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "unsupported export format",
			map[string]string{"format": "format must be one of PDF EXCEL CSV"})
	}

	now := s.now()
	job := &models.ReportJob{
		Type:      req.Type,
		Format:    format,
		Status:    models.ReportStatusQueued,
		RunAt:     now,
		CreatedBy: actorID,
		CreatedAt: now,
	}
	if req.RunAt != nil && req.RunAt.After(now) {
		job.Status = models.ReportStatusScheduled
		job.RunAt = req.RunAt.UTC()
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Internal(err, "failed to create report job")
	}
	if job.Status == models.ReportStatusQueued {
		if err := s.enqueue(ctx, job); err != nil {
			return nil, appErrors.Internal(err, "failed to enqueue report job")
		}
	}
	s.logger.Info("report job accepted", zap.String("job_id", job.ID), zap.String("type", string(job.Type)), zap.String("status", string(job.Status)))
	return job, nil
}

// GetStatus returns the job metadata.
func (s *ReportService) GetStatus(ctx context.Context, id string) (*models.ReportJob, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "report job")
	}
	return job, nil
}

// ResolveDownload validates a signed token and opens the stored file.
func (s *ReportService) ResolveDownload(ctx context.Context, token string) (*ReportDownload, error) {
	jobID, relPath, err := s.files.ParseToken(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "download link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download token")
	}
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "report job")
	}
	if job.Status != models.ReportStatusFinished || job.FilePath == nil || *job.FilePath != relPath {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "report not available")
	}
	reader, size, err := s.files.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report file no longer available")
	}
	renderer, err := export.RendererFor(job.Format)
	contentType := "application/octet-stream"
	if err == nil {
		contentType = renderer.ContentType()
	}
	return &ReportDownload{Reader: reader, Size: size, Filename: path.Base(relPath), ContentType: contentType}, nil
}

// PromoteDue queues scheduled jobs whose run time has passed. It runs as a scheduler task.
func (s *ReportService) PromoteDue(ctx context.Context, now time.Time) error {
	due, err := s.repo.ClaimDue(ctx, now.UTC(), 20)
	if err != nil {
		return err
	}
	for i := range due {
		if err := s.enqueue(ctx, &due[i]); err != nil {
			s.logger.Warn("failed to enqueue due report", zap.String("job_id", due[i].ID), zap.Error(err))
		}
	}
	return nil
}

// RecoverPendingJobs replays queued jobs after a restart.
func (s *ReportService) RecoverPendingJobs(ctx context.Context) {
	pending, err := s.repo.ListQueued(ctx, 50)
	if err != nil {
		s.logger.Warn("failed to recover queued report jobs", zap.Error(err))
		return
	}
	for i := range pending {
		if err := s.queue.Enqueue(jobs.Job{ID: pending[i].ID, Type: JobTypeReport}); err != nil {
			s.logger.Warn("failed to requeue pending job", zap.String("job_id", pending[i].ID), zap.Error(err))
		}
	}
}

func (s *ReportService) enqueue(ctx context.Context, job *models.ReportJob) error {
	err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: JobTypeReport})
	if err == nil {
		return nil
	}
	failed := models.ReportStatusFailed
	msg := "failed to enqueue job"
	now := s.now()
	if updateErr := s.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{
		Status:       &failed,
		ErrorMessage: &msg,
		FinishedAt:   &now,
	}); updateErr != nil {
		s.logger.Warn("failed to mark report job failed", zap.String("job_id", job.ID), zap.Error(updateErr))
	}
	job.Status = failed
	return err
}

// ReportWorker bridges queue jobs to ExportService.
type ReportWorker struct {
	repo       reportJobStore
	exporter   exportGenerator
	logger     *zap.Logger
	maxRetries int
}

// NewReportWorker constructs a worker.
func NewReportWorker(repo reportJobStore, exporter exportGenerator, maxRetries int, logger *zap.Logger) *ReportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &ReportWorker{repo: repo, exporter: exporter, logger: logger, maxRetries: maxRetries}
}

// Handle processes a queue job.
func (w *ReportWorker) Handle(ctx context.Context, job jobs.Job) error {
	record, err := w.repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if record.Status == models.ReportStatusFinished {
		return nil
	}
	processing := models.ReportStatusProcessing
	if err := w.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{Status: &processing}); err != nil {
		return err
	}

	result, err := w.exporter.Generate(ctx, record)
	if err != nil {
		msg := err.Error()
		params := repository.UpdateReportJobParams{ErrorMessage: &msg}
		if job.Attempt >= w.maxRetries {
			failed := models.ReportStatusFailed
			now := time.Now().UTC()
			params.Status = &failed
			params.FinishedAt = &now
		} else {
			queued := models.ReportStatusQueued
			params.Status = &queued
		}
		if updateErr := w.repo.Update(ctx, job.ID, params); updateErr != nil {
			w.logger.Warn("failed to record report failure", zap.String("job_id", job.ID), zap.Error(updateErr))
		}
		return err
	}

	finished := models.ReportStatusFinished
	now := time.Now().UTC()
	clear := ""
	if err := w.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{
		Status:       &finished,
		FilePath:     &result.RelativePath,
		ResultURL:    &result.URL,
		ErrorMessage: &clear,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Warn("failed to mark job finished", zap.String("job_id", job.ID), zap.Error(err))
		return err
	}
	w.logger.Info("report generated", zap.String("job_id", job.ID), zap.String("path", result.RelativePath))
	return nil
}
