package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

// Sentinel errors surfaced by repositories for constraint outcomes.
var (
	ErrDuplicate      = errors.New("duplicate record")
	ErrReferenced     = errors.New("record is still referenced")
	ErrCourseFull     = errors.New("course is at capacity")
	ErrCourseInactive = errors.New("course is inactive")
	ErrStaleStatus    = errors.New("status changed concurrently")
)

const searchLimit = 100

// where accumulates SQL conditions with positional ($n) arguments.
type where struct {
	conditions []string
	args       []interface{}
}

// add appends expr, formatted with the next placeholder index as %[1]d.
func (w *where) add(expr string, value interface{}) {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf(expr, len(w.args)))
}

func (w *where) String() string {
	if len(w.conditions) == 0 {
		return "WHERE 1=1"
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a LIKE ... ESCAPE '\' match, so wildcards in term match literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

func pageClause(p models.PageRequest) string {
	p = p.Normalize()
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.PageSize, p.Offset())
}

// insertReturningID runs a named INSERT ... RETURNING id through db or tx.
func insertReturningID(ctx context.Context, q sqlx.ExtContext, query string, arg interface{}) (int64, error) {
	rows, err := sqlx.NamedQueryContext(ctx, q, query, arg)
	if err != nil {
		return 0, translatePQ(err)
	}
	defer rows.Close() //nolint:errcheck
	var id int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, errors.New("insert returned no id")
	}
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, rows.Err()
}

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translatePQ maps unique and foreign key violations to ErrDuplicate and ErrReferenced.
func translatePQ(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrReferenced, pqErr.Constraint)
	}
	return err
}

// count runs a COUNT(*) style query.
func count(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (int, error) {
	var total int
	if err := sqlx.GetContext(ctx, q, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}
