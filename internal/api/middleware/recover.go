package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/redact"
)

// Recoverer turns a handler panic into a 500 JSON response and an ERROR log
// with the redacted panic value. The server keeps serving other requests.
// When the handler had already started its response, the panic is only logged.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC: net/http uses this sentinel to abort the response
				panic(rec)
			}

			err := fmt.Errorf("panic: %s", redact.Value(rec))
			if ww.Status() != 0 {
				logger.FromContextOrDefault(r.Context(), slog.Default()).Error("panic after response started",
					"status_code", ww.Status(),
					"bytes_written", ww.BytesWritten(),
					"path", r.URL.Path,
					"method", r.Method,
					"error", redact.Error(err))
				return
			}

			shared.RespondWithErrorAndLog(ww, r, http.StatusInternalServerError, "Internal server error", err)
		}()

		next.ServeHTTP(ww, r)
	})
}
