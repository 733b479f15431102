package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/api/middleware"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/events"
	"github.com/phrazzld/task-manager-api/internal/platform/memory"
	"github.com/phrazzld/task-manager-api/internal/report"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the handlers over svc the same way the server does.
func newTestRouter(t *testing.T, svc service.TaskService) http.Handler {
	t.Helper()
	log := testLogger()

	tasks := NewTaskHandler(svc, log)
	system := NewSystemHandler("Task Manager API", "1.0", svc, log)
	reports := NewReportHandler(svc, &report.PDFRenderer{Compress: false}, log)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(middleware.Recoverer)
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/", system.Root)
	r.Get("/health", system.Health)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", tasks.ListTasks)
		r.Post("/", tasks.CreateTask)
		r.Get("/report.pdf", reports.DownloadPDF)
		r.Get("/export", reports.Export)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tasks.GetTask)
			r.Put("/", tasks.UpdateTask)
			r.Delete("/", tasks.DeleteTask)
			r.Patch("/toggle", tasks.ToggleTask)
		})
	})
	return r
}

// newMemoryService builds a task service backed by the in-memory store.
func newMemoryService(t *testing.T) service.TaskService {
	t.Helper()
	log := testLogger()
	svc, err := service.NewTaskService(memory.NewTaskStore(log), events.NewDispatcher(log), log)
	require.NoError(t, err)
	return svc
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) TaskResponse {
	t.Helper()
	var resp TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func createTask(t *testing.T, h http.Handler, body string) TaskResponse {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decodeTask(t, w)
}

// stubTaskService is a function-field fake of service.TaskService.
type stubTaskService struct {
	CreateTaskFn func(ctx context.Context, title, description string) (domain.Task, error)
	GetTaskFn    func(ctx context.Context, id string) (domain.Task, error)
	ListTasksFn  func(ctx context.Context) ([]domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error)
	ToggleTaskFn func(ctx context.Context, id string) (domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id string) error
	CountTasksFn func(ctx context.Context) (int, error)

	calls int
}

var _ service.TaskService = (*stubTaskService)(nil)

func (s *stubTaskService) CreateTask(ctx context.Context, title, description string) (domain.Task, error) {
	s.calls++
	return s.CreateTaskFn(ctx, title, description)
}

func (s *stubTaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	s.calls++
	return s.GetTaskFn(ctx, id)
}

func (s *stubTaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	s.calls++
	return s.ListTasksFn(ctx)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error) {
	s.calls++
	return s.UpdateTaskFn(ctx, id, update)
}

func (s *stubTaskService) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	s.calls++
	return s.ToggleTaskFn(ctx, id)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id string) error {
	s.calls++
	return s.DeleteTaskFn(ctx, id)
}

func (s *stubTaskService) CountTasks(ctx context.Context) (int, error) {
	s.calls++
	return s.CountTasksFn(ctx)
}
