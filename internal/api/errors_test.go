package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"nil error", nil, http.StatusInternalServerError, MsgUnexpected},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound, MsgCategoryNotFound},
		{"wrapped product not found", fmt.Errorf("get: %w", store.ErrProductNotFound), http.StatusNotFound, MsgProductNotFound},
		{"tag not found", service.NewServiceError("tag", "get", "x", store.ErrTagNotFound), http.StatusNotFound, MsgTagNotFound},
		{
			"domain validation",
			domain.NewValidationError("product_name", "is required", domain.ErrEmptyName),
			http.StatusBadRequest,
			"Invalid product_name: is required",
		},
		{"invalid entity", fmt.Errorf("%w: fk", store.ErrInvalidEntity), http.StatusBadRequest,
			"Invalid entity data: a referenced category or tag may not exist"},
		{"duplicate", store.ErrDuplicate, http.StatusBadRequest, "Entity already exists"},
		{"infrastructure", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, MsgUnexpected},
		{"commit failure", fmt.Errorf("%w: commit", store.ErrTransactionFailed), http.StatusInternalServerError, MsgUnexpected},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedMsg, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverLeaksCause(t *testing.T) {
	t.Parallel()

	err := errors.New("pq: password authentication failed for user shop at db.internal:5432")
	assert.Equal(t, MsgUnexpected, GetSafeErrorMessage(err))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := validateStruct(CreateTagRequest{})
	assert.Equal(t, "Invalid tag_name: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
