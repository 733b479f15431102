package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/events"
	"github.com/phrazzld/task-manager-api/internal/platform/memory"
	"github.com/phrazzld/task-manager-api/internal/report"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// application holds the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
	taskService  service.TaskService
	pdfRenderer  *report.PDFRenderer
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		taskStore:   memory.NewTaskStore(logger),
		pdfRenderer: report.NewPDFRenderer(),
	}

	dispatcher := events.NewDispatcher(logger)
	dispatcher.Subscribe(events.NewAuditLogHandler(logger))
	app.eventEmitter = dispatcher

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized",
		"app_name", cfg.App.Name,
		"app_version", cfg.App.Version)

	return app, nil
}

// cleanup handles shutdown of application resources. The store lives only
// as long as the process, so there is nothing to flush.
func (app *application) cleanup() {
	count, err := app.taskStore.Count(context.Background())
	if err != nil {
		app.logger.Error("Failed to count tasks during shutdown", "error", err)
	}
	app.logger.Info("Application shutdown completed", "tasks_discarded", count)
}
