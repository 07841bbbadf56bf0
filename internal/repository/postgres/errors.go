package postgres

import (
	"database/sql"
	"errors"

	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/lib/pq"
)

// pqUniqueViolation is the SQLSTATE of a unique constraint violation
const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// wrapError marks a driver error with the sentinel callers branch on
func wrapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	case isUniqueViolation(err):
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrAlreadyExists)
	default:
		return ierr.WithError(err).
			WithHintf("Failed to access %s", entity).
			Mark(ierr.ErrDatabase)
	}
}

// notFoundIfNoRows turns a write that touched nothing into a not found error
func notFoundIfNoRows(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapError(err, entity, id)
	}
	if n == 0 {
		return wrapError(sql.ErrNoRows, entity, id)
	}
	return nil
}

func orderDirection(f *types.QueryFilter) string {
	if f.GetOrder() == types.OrderAsc {
		return "ASC"
	}
	return "DESC"
}
