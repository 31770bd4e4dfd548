package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// UserService handles back-office account management.
type UserService struct {
	repo      userRepository
	validator *validation.Validator
	logger    *zap.Logger
	hashCost  int
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validator *validation.Validator, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validator == nil {
		validator = validation.New()
	}
	return &UserService{repo: repo, validator: validator, logger: logger, hashCost: bcrypt.DefaultCost}
}

// List returns a page of users, newest first.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) (models.PagedResult[models.User], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.PagedResult[models.User]{}, appErrors.Internal(err, "failed to list users")
	}
	return models.NewPagedResult(users, total, filter.PageRequest), nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return user, nil
}

// Create registers a new active user.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	email := req.Email
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		Active:       true,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, writeError(err, "create", "user")
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Update modifies the user attributes. An empty password keeps the current hash.
func (s *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	req.Email = normaliseEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	email := req.Email
	if err := s.ensureEmailFree(ctx, email, id); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}
	user.Email = email
	user.FullName = strings.TrimSpace(req.FullName)
	user.Role = req.Role
	user.Active = req.Active
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, writeError(err, "update", "user")
	}
	return user, nil
}

// Delete deactivates a user and revokes their sessions.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "user")
	}
	s.logger.Info("user deactivated", zap.Int64("user_id", id))
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check email uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email already exists")
	}
	return nil
}
