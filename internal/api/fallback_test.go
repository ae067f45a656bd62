package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrongRoute(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch} {
		w := httptest.NewRecorder()
		WrongRoute(w, httptest.NewRequest(method, "/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, WrongRouteBody, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
