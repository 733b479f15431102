package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/events"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask creates a new task with the given title and description.
	CreateTask(ctx context.Context, title, description string) (domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id string) (domain.Task, error)

	// ListTasks returns all tasks in creation order.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error)

	// ToggleTask flips a task's completion state.
	ToggleTask(ctx context.Context, id string) (domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// CountTasks returns the number of tasks currently stored.
	CountTasks(ctx context.Context) (int, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, title, description string) (domain.Task, error) {
	task, err := s.taskStore.Create(ctx, title, description)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("create_task", "failed to create task", err)
	}

	s.emit(ctx, events.TypeTaskCreated, task.ID, taskSnapshot(task))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask.
// An empty update reads the task back without touching the store or emitting
// an event.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	update domain.TaskUpdate,
) (domain.Task, error) {
	if update.IsEmpty() {
		return s.GetTask(ctx, id)
	}

	task, err := s.taskStore.Update(ctx, id, update)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("update_task", "failed to update task", err)
	}

	s.emit(ctx, events.TypeTaskUpdated, task.ID, taskSnapshot(task))
	return task, nil
}

// ToggleTask implements TaskService.ToggleTask
func (s *taskServiceImpl) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.taskStore.Toggle(ctx, id)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("toggle_task", "failed to toggle task", err)
	}

	s.emit(ctx, events.TypeTaskToggled, task.ID, map[string]bool{"completed": task.Completed})
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.emit(ctx, events.TypeTaskDeleted, id, nil)
	return nil
}

// CountTasks implements TaskService.CountTasks
func (s *taskServiceImpl) CountTasks(ctx context.Context) (int, error) {
	n, err := s.taskStore.Count(ctx)
	if err != nil {
		return 0, NewTaskServiceError("count_tasks", "failed to count tasks", err)
	}
	return n, nil
}

// emit publishes a lifecycle event. The mutation has already happened, so
// failures are logged and never returned to the caller.
func (s *taskServiceImpl) emit(ctx context.Context, eventType, taskID string, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskEvent(eventType, taskID, payload)
	if err != nil {
		log.Error("failed to build task event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("task_id", taskID))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit task event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("task_id", taskID))
	}
}

type taskEventPayload struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func taskSnapshot(task domain.Task) taskEventPayload {
	return taskEventPayload{Title: task.Title, Completed: task.Completed}
}
