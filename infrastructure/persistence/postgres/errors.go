package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"

	"github.com/horolog/horolog/domain/apperror"
)

const uniqueViolation = "23505"

// mapStoreError converts driver errors into the application taxonomy.
// Unique violations become conflicts (the store's index is the only place
// SKU uniqueness is checked), connection-class failures become retryable
// StoreUnavailable errors, everything else is internal.
func mapStoreError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == uniqueViolation:
			return apperror.Conflict("sku already exists")
		case pqErr.Code.Class() == "08":
			return apperror.StoreUnavailable(op, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return apperror.StoreUnavailable(op, err)
	}
	return apperror.Internal(op+" failed", err)
}
