package store

import (
	"errors"
	"fmt"

	"github.com/phrazzld/catalog-api/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity, such as a second link between the same product and tag.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects an entity, for
	// example because it references a category or tag that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails to commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrCategoryNotFound indicates that the requested category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// ErrTagNotFound indicates that the requested tag does not exist.
	ErrTagNotFound = fmt.Errorf("%w: tag", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ErrorKind classifies persistence failures so the delivery layer can pick
// a response without inspecting driver-specific errors.
type ErrorKind int

const (
	// KindInfrastructure covers connectivity loss and any unexpected failure.
	KindInfrastructure ErrorKind = iota
	// KindNotFound means the requested id has no matching row.
	KindNotFound
	// KindValidation means the payload was malformed or violated a constraint.
	KindValidation
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "infrastructure"
	}
}

// KindOf classifies err. A nil error is reported as KindInfrastructure and
// should not be passed in.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, ErrInvalidEntity),
		errors.Is(err, ErrDuplicate):
		return KindValidation
	default:
		return KindInfrastructure
	}
}
