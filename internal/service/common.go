package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

// EventPublisher receives domain events after a successful write.
type EventPublisher interface {
	Publish(ctx context.Context, event string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// lookupError maps a repository read failure to NOT_FOUND or INTERNAL_ERROR.
func lookupError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Internal(err, "failed to load "+entity)
}

// writeError maps a repository write failure. Unique and foreign key violations become conflicts.
func writeError(err error, action, entity string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, entity+" already exists")
	case errors.Is(err, repository.ErrReferenced):
		return appErrors.Clone(appErrors.ErrConflict, entity+" is still referenced by other records")
	}
	return appErrors.Internal(err, fmt.Sprintf("failed to %s %s", action, entity))
}

// normaliseEmail trims and lowercases an address so validation and uniqueness see the stored form.
func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidTransition(kind string, from, to interface{}) error {
	return appErrors.WithDetails(appErrors.ErrInvalidTransition,
		fmt.Sprintf("cannot change %s from %v to %v", kind, from, to),
		map[string]string{"from": fmt.Sprint(from), "to": fmt.Sprint(to)})
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
