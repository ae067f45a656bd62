// Package api exposes the catalog over HTTP. Handlers decode and validate
// JSON requests, call the services in internal/service, and translate
// results and errors into JSON responses with the helpers in api/shared.
package api
