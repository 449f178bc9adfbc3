// Package pgerr maps PostgreSQL driver errors onto the errs taxonomy so the
// application layer never inspects driver types.
package pgerr

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes handled explicitly.
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	AdminShutdown        = "57P01"
	CannotConnectNow     = "57P03"
	TooManyConnections   = "53300"
)

// Classify wraps err for operation op:
//   - unique and check violations become errs.ConflictError
//   - foreign key violations become errs.ValueIsInvalidError
//   - connection failures, serialization failures and deadlocks become
//     errs.StoreUnavailableError
//
// gorm.ErrRecordNotFound is returned unchanged; repositories turn it into
// errs.ObjectNotFoundError with the ID they looked up.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == UniqueViolation:
			return errs.NewConflictErrorWithCause(op, "already exists: "+pgErr.ConstraintName, err)
		case pgErr.Code == CheckViolation:
			return errs.NewConflictErrorWithCause(op, "violates "+pgErr.ConstraintName, err)
		case pgErr.Code == ForeignKeyViolation:
			return errs.NewValueIsInvalidErrorWithCause(pgErr.ConstraintName, err)
		case isTransient(pgErr.Code):
			return errs.NewStoreUnavailableError(op, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return errs.NewStoreUnavailableError(op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(code string) bool {
	switch code {
	case SerializationFailure, DeadlockDetected, AdminShutdown, CannotConnectNow, TooManyConnections:
		return true
	}
	// Class 08: connection exception.
	return strings.HasPrefix(code, "08")
}
