package service

import (
	"fmt"
)

// ServiceError wraps a failure from one service operation with the entity
// and operation it belongs to. The wrapped error keeps its classification,
// so store.KindOf sees through it.
type ServiceError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Entity, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(entity, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TagSyncStep names one of the two writes issued when reconciling a
// product's tags.
type TagSyncStep string

const (
	// TagSyncStepRemove is the bulk delete of associations no longer wanted.
	TagSyncStepRemove TagSyncStep = "remove"
	// TagSyncStepInsert is the bulk insert of newly requested associations.
	TagSyncStepInsert TagSyncStep = "insert"
)

// TagSyncError reports which reconciliation step failed for a product.
//
// RemoveCommitted is true only when tag sync runs outside a transaction and
// the remove step had already been applied before the insert failed; the
// product's tag set is then a strict subset of both the old and the
// requested set.
type TagSyncError struct {
	ProductID       int64
	Step            TagSyncStep
	RemoveCommitted bool
	Err             error
}

// Error implements the error interface.
func (e *TagSyncError) Error() string {
	return fmt.Sprintf("tag sync for product %d failed at %s step (remove committed: %t): %v",
		e.ProductID, e.Step, e.RemoveCommitted, e.Err)
}

// Unwrap returns the underlying store error.
func (e *TagSyncError) Unwrap() error {
	return e.Err
}
