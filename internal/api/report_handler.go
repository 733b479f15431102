package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/report"
	"github.com/phrazzld/task-manager-api/internal/service"
)

// FormatQueryParam selects the export format.
const FormatQueryParam = "format"

// ReportHandler serves downloadable snapshots of the task collection.
type ReportHandler struct {
	taskService service.TaskService
	renderer    *report.PDFRenderer
	now         func() time.Time
	logger      *slog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(taskService service.TaskService, renderer *report.PDFRenderer, logger *slog.Logger) *ReportHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for ReportHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReportHandler")
	}
	if renderer == nil {
		renderer = report.NewPDFRenderer()
	}

	return &ReportHandler{
		taskService: taskService,
		renderer:    renderer,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "report_handler")),
	}
}

// DownloadPDF handles GET /tasks/report.pdf requests.
func (h *ReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	generatedAt := h.now()
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, tasks, generatedAt); err != nil {
		HandleAPIError(w, r, fmt.Errorf("render pdf report: %w", err))
		return
	}

	log.Debug("task report rendered",
		slog.Int("tasks", len(tasks)),
		slog.Int("bytes", buf.Len()))

	writeAttachment(w, "application/pdf", report.Filename(generatedAt), buf.Bytes())
}

// Export handles GET /tasks/export requests.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get(FormatQueryParam))
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError(FormatQueryParam, "must be one of: json, csv", err))
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Export(&buf, tasks, format); err != nil {
		HandleAPIError(w, r, fmt.Errorf("export tasks: %w", err))
		return
	}

	writeAttachment(w, format.ContentType(), format.Filename(), buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
