package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/task-manager-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-manager-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", apiMiddleware.TraceIDHeader},
		MaxAge:         app.config.CORS.MaxAgeSeconds,
	}))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	systemHandler := api.NewSystemHandler(app.config.App.Name, app.config.App.Version, app.taskService, app.logger)
	reportHandler := api.NewReportHandler(app.taskService, app.pdfRenderer, app.logger)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/report.pdf", reportHandler.DownloadPDF)
		r.Get("/export", reportHandler.Export)

		r.Route("/{"+api.TaskIDParam+"}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTask)
			r.Put("/", taskHandler.UpdateTask)
			r.Delete("/", taskHandler.DeleteTask)
			r.Patch("/toggle", taskHandler.ToggleTask)
		})
	})

	return r
}
