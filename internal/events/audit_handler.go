package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/platform/logger"
)

// AuditLogHandler writes one structured log line per task event.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler.
func NewAuditLogHandler(l *slog.Logger) *AuditLogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AuditLogHandler{logger: l.With("component", "task_audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)
	log.InfoContext(ctx, "task event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("task_id", event.TaskID),
		slog.Time("occurred_at", event.CreatedAt))
	return nil
}
