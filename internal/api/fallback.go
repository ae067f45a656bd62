package api

import (
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
)

// WrongRouteBody is served for any path or method no route matches.
const WrongRouteBody = "<h1>Wrong Route!</h1>"

// WrongRoute answers unmatched requests with 404 and a short HTML page,
// whatever the method.
func WrongRoute(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithHTML(w, http.StatusNotFound, WrongRouteBody)
}

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
