package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

// ErrorKind classifies storage failures. The set is closed; callers
// switch on it rather than inspecting error strings.
type ErrorKind int

const (
	// KindUnknown covers any store failure that is not more specifically
	// classified, including scan failures on malformed rows.
	KindUnknown ErrorKind = iota

	// KindUniqueViolation indicates the store rejected a write because it
	// would violate a unique constraint.
	KindUniqueViolation
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUniqueViolation:
		return "unique_violation"
	default:
		return "unknown"
	}
}

// StorageError is the only error type this package returns for store
// failures. It never crosses the service boundary unwrapped.
type StorageError struct {
	Kind ErrorKind
	Op   string // the repository operation that failed, e.g. "create user"
	Err  error  // underlying driver error, for logs only
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("storage: %s: %s", e.Op, e.Kind)
}

// Unwrap returns the underlying driver error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// classify wraps a driver error as a StorageError, detecting the
// store's unique-constraint conflict signal.
func classify(op string, err error) *StorageError {
	kind := KindUnknown
	if isUniqueViolation(err) {
		kind = KindUniqueViolation
	}
	return &StorageError{Kind: kind, Op: op, Err: err}
}

// isUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation, using the driver's error code rather than
// string matching.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
