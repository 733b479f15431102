package memory

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by a single
// RWMutex. Insertion order is tracked separately so List is deterministic.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]domain.Task
	order  []string
	logger *slog.Logger
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[string]domain.Task),
		order:  make([]string, 0),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, title, description string) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description)
	if err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return domain.Task{}, invalidTask("create", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// An existing ID must never be overwritten.
	for {
		if _, exists := s.tasks[task.ID]; !exists {
			break
		}
		log.Warn("regenerating colliding task ID", slog.String("task_id", task.ID))
		task, _ = domain.NewTask(title, description)
	}

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)

	log.Debug("task created", slog.String("task_id", task.ID))
	return task, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}

	updated, err := task.Apply(update)
	if err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return domain.Task{}, invalidTask("update", err)
	}

	s.tasks[id] = updated
	log.Debug("task updated", slog.String("task_id", id))
	return updated, nil
}

// Toggle implements store.TaskStore.Toggle
func (s *TaskStore) Toggle(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}

	task = task.Toggled()
	s.tasks[id] = task
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}

	delete(s.tasks, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// Count implements store.TaskStore.Count
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

// invalidTask wraps a domain validation failure so it matches both
// store.ErrInvalidEntity and the original validation error.
func invalidTask(operation string, err error) error {
	return store.NewStoreError("task", operation, "task failed validation", errors.Join(store.ErrInvalidEntity, err))
}
