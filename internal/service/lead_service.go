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

type leadRepository interface {
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, int, error)
	Search(ctx context.Context, term string) ([]models.Lead, error)
	FindByID(ctx context.Context, id int64) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	UpdateStatus(ctx context.Context, id int64, from, to models.LeadStatus) error
	Delete(ctx context.Context, id int64) error
	Convert(ctx context.Context, lead *models.Lead, student *models.Student) error
}

type studentEmailChecker interface {
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// LeadService manages CRM leads and their conversion into students.
type LeadService struct {
	repo      leadRepository
	students  studentEmailChecker
	events    EventPublisher
	validator *validation.Validator
	logger    *zap.Logger
}

// NewLeadService constructs the lead service.
func NewLeadService(repo leadRepository, students studentEmailChecker, events EventPublisher, validator *validation.Validator, logger *zap.Logger) *LeadService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{repo: repo, students: students, events: publisherOrNop(events), validator: validator, logger: logger}
}

// List returns a page of leads, newest first.
func (s *LeadService) List(ctx context.Context, filter models.LeadFilter) (models.PagedResult[models.Lead], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	leads, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.Lead]{}, appErrors.Internal(err, "failed to list leads")
	}
	return models.NewPagedResult(leads, total, filter.PageRequest), nil
}

// Search finds leads by name, email or company.
func (s *LeadService) Search(ctx context.Context, term string) ([]models.Lead, error) {
	term = strings.TrimSpace(term)
	if err := s.validator.Var("q", term, "required,max=100"); err != nil {
		return nil, err
	}
	leads, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to search leads")
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

// Get returns a lead by id.
func (s *LeadService) Get(ctx context.Context, id int64) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "lead")
	}
	return lead, nil
}

// Create captures a new lead in status NEW.
func (s *LeadService) Create(ctx context.Context, req models.LeadRequest) (*models.Lead, error) {
	if req.Email != nil {
		email := normaliseEmail(*req.Email)
		req.Email = &email
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	lead := &models.Lead{Status: models.LeadNew}
	applyLeadRequest(lead, req)
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, writeError(err, "create", "lead")
	}
	return lead, nil
}

// Update modifies lead contact details.
func (s *LeadService) Update(ctx context.Context, id int64, req models.LeadRequest) (*models.Lead, error) {
	if req.Email != nil {
		email := normaliseEmail(*req.Email)
		req.Email = &email
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "lead")
	}
	applyLeadRequest(lead, req)
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, writeError(err, "update", "lead")
	}
	return lead, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "lead")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "lead")
	}
	return nil
}

// UpdateStatus moves a lead through the funnel. CONVERTED is reached only through Convert.
func (s *LeadService) UpdateStatus(ctx context.Context, id int64, req models.LeadStatusRequest) (*models.Lead, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "lead")
	}
	if req.Status == models.LeadConverted || !lead.Status.CanTransitionTo(req.Status) {
		return nil, invalidTransition("lead status", lead.Status, req.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, lead.Status, req.Status); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "lead status changed concurrently")
		}
		return nil, writeError(err, "update", "lead status")
	}
	lead.Status = req.Status
	lead.UpdatedAt = time.Now().UTC()
	return lead, nil
}

// Convert turns a qualified lead into a student.
func (s *LeadService) Convert(ctx context.Context, id int64) (*models.LeadConversion, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "lead")
	}
	if !lead.Status.CanTransitionTo(models.LeadConverted) {
		return nil, invalidTransition("lead status", lead.Status, models.LeadConverted)
	}
	if lead.Email == nil || strings.TrimSpace(*lead.Email) == "" {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "lead has no email address",
			map[string]string{"email": "email is required to convert a lead"})
	}
	email := normaliseEmail(*lead.Email)
	exists, err := s.students.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a student with this email already exists")
	}

	first, last := splitName(lead.FullName)
	student := &models.Student{FirstName: first, LastName: last, Email: email, Phone: lead.Phone, Active: true}
	if err := s.repo.Convert(ctx, lead, student); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleStatus):
			return nil, appErrors.Clone(appErrors.ErrConflict, "lead status changed concurrently")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "a student with this email already exists")
		}
		return nil, appErrors.Internal(err, "failed to convert lead")
	}
	s.logger.Info("lead converted", zap.Int64("lead_id", lead.ID), zap.Int64("student_id", student.ID))
	conversion := &models.LeadConversion{Lead: *lead, Student: *student}
	s.events.Publish(ctx, models.EventLeadConverted, conversion)
	return conversion, nil
}

// splitName splits on the first space; a single word becomes the first name.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

func applyLeadRequest(lead *models.Lead, req models.LeadRequest) {
	lead.FullName = strings.TrimSpace(req.FullName)
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.Company = req.Company
	lead.Source = req.Source
	lead.Notes = req.Notes
}
