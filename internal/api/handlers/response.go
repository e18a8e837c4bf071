package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/accounts-be/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Status  int                 `json:"status"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details []models.FieldError `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode response")
	}
}

// RespondError writes a JSON error body with the standard status text as the error kind.
func RespondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}

func respondValidationError(w http.ResponseWriter, verr *models.DataValidationError) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{
		Status:  http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
		Message: verr.Message,
		Details: verr.Details,
	})
}

// NotFound replies 404 for paths no route matches.
func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusNotFound, "The requested URL "+r.URL.Path+" was not found on the server.")
}

var routeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// MethodNotAllowed replies 405 for verbs a matched route does not serve,
// listing the verbs it does serve in Allow.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if allowed := allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	RespondError(w, http.StatusMethodNotAllowed, "The method "+r.Method+" is not allowed for the requested URL.")
}

// allowedMethods asks the router which verbs are registered for the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}

	var allowed []string
	for _, method := range routeMethods {
		if rctx.Routes.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
