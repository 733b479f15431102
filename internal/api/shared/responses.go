package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/redact"
)

// ValidationErrorDetail is the detail string of every 422 response.
const ValidationErrorDetail = "Validation error"

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Code    int    `json:"-"` // used for logging only
	TraceID string `json:"trace_id,omitempty"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail  string              `json:"detail"`
	Errors  []domain.FieldError `json:"errors"`
	TraceID string              `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		requestLogger(r).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code and
// detail, tagged with the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	traceID := GetTraceID(r.Context())

	requestLogger(r).Debug("sending error response",
		"status_code", status,
		"detail", detail,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Detail:  detail,
		Code:    status,
		TraceID: traceID,
	})
}

// RespondWithValidationError writes a 422 listing every offending field.
// A plain error without field detail is reported against the body.
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := GetTraceID(r.Context())

	var fields []domain.FieldError
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		fields = verr.Fields
	} else {
		fields = []domain.FieldError{{Field: BodyField, Message: "is invalid"}}
	}

	requestLogger(r).Debug("rejecting invalid request",
		"status_code", http.StatusUnprocessableEntity,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method,
		"fields", len(fields))

	RespondWithJSON(w, r, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Detail:  ValidationErrorDetail,
		Errors:  fields,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a JSON error response and logs the redacted
// underlying error. Clients only ever see detail.
//
// Log levels: 5xx at ERROR, 429 at WARN, other statuses at DEBUG.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, detail string, err error) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("detail", detail),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	}

	requestLogger(r).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Detail:  detail,
		Code:    status,
		TraceID: traceID,
	})
}

func requestLogger(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), slog.Default())
}
