package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/service"
)

// SystemHandler serves the service banner and health check.
type SystemHandler struct {
	name        string
	version     string
	taskService service.TaskService
	logger      *slog.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, taskService service.TaskService, logger *slog.Logger) *SystemHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for SystemHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SystemHandler")
	}

	return &SystemHandler{
		name:        name,
		version:     version,
		taskService: taskService,
		logger:      logger.With(slog.String("component", "system_handler")),
	}
}

// Root handles GET / requests.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, RootResponse{Message: h.name, Version: h.version})
}

// Health handles GET /health requests.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.taskService.CountTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "healthy", TasksCount: count})
}
