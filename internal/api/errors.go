package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// Client-facing messages.
const (
	MsgCategoryNotFound = "No category found with this id"
	MsgProductNotFound  = "No product found with this id"
	MsgTagNotFound      = "No tag found with this id!"
	MsgInvalidID        = "Invalid id"
	MsgInvalidRequest   = "Invalid request format"
	MsgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on their store.ErrorKind. This prevents leaking internal error types
// or messages to clients.
func MapErrorToStatusCode(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	switch store.KindOf(err) {
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, store.ErrCategoryNotFound):
		return MsgCategoryNotFound
	case errors.Is(err, store.ErrProductNotFound):
		return MsgProductNotFound
	case errors.Is(err, store.ErrTagNotFound):
		return MsgTagNotFound
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data: a referenced category or tag may not exist"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return MsgUnexpected
	}
}

// SanitizeValidationError turns a validator error into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(fe.Namespace())
		return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// jsonFieldName strips the struct prefix from a validator namespace such as
// "CreateProductRequest.product_name".
func jsonFieldName(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "gt", "gte":
		return "out of range"
	default:
		return "validation failed"
	}
}
