package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"ticketresale/internal/domain"
)

// PostgreSQL error codes the repositories translate into domain error kinds.
const (
	pqForeignKeyViolation   = "23503"
	pqNotNullViolation      = "23502"
	pqCheckViolation        = "23514"
	pqStringTooLong         = "22001"
	pqNumericOutOfRange     = "22003"
	pqInvalidDatetimeFormat = "22007"
	pqDatetimeOutOfRange    = "22008"
	pqInvalidTextInput      = "22P02"
	pqTooManyConnections    = "53300"
	pqAdminShutdown         = "57P01"
	pqCrashShutdown         = "57P02"
	pqCannotConnectNow      = "57P03"
)

// translateError maps a database/sql or lib/pq error onto the domain error kinds.
// A write whose context ended before the database answered is reported as ErrOutcomeUnknown.
func translateError(ctx context.Context, op string, err error, write bool) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if write {
			return fmt.Errorf("%s: %w: %w", op, domain.ErrOutcomeUnknown, ctxErr)
		}
		return fmt.Errorf("%s: %w", op, ctxErr)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrReference)
		case pqNotNullViolation, pqCheckViolation, pqStringTooLong, pqNumericOutOfRange,
			pqInvalidDatetimeFormat, pqDatetimeOutOfRange, pqInvalidTextInput:
			return fmt.Errorf("%s: %w", op, domain.NewValidationError(pqErr.Message))
		case pqTooManyConnections, pqAdminShutdown, pqCrashShutdown, pqCannotConnectNow:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
		}
		if pqErr.Code.Class() == "08" {
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
		}
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
