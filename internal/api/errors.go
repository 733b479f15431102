package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// Client-facing error details.
const (
	DetailTaskNotFound     = "Task not found"
	DetailInternalError    = "Internal server error"
	DetailRouteNotFound    = "Not Found"
	DetailMethodNotAllowed = "Method Not Allowed"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound), store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing detail for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return DetailInternalError
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound), store.IsNotFoundError(err):
		return DetailTaskNotFound

	case errors.Is(err, domain.ErrValidation):
		return shared.ValidationErrorDetail

	default:
		return DetailInternalError
	}
}

// HandleAPIError writes the response for err. Validation failures carry their
// field detail; everything else gets a safe detail string and a redacted log
// line.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusUnprocessableEntity {
		shared.RespondWithValidationError(w, r, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// NotFound answers requests for paths no route matches.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, DetailRouteNotFound)
}

// MethodNotAllowed answers requests for a known path with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, DetailMethodNotAllowed)
}
