package api

import "github.com/phrazzld/task-manager-api/internal/domain"

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"required,min=1"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Absent and null fields
// leave the stored value untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ToDomain converts the request into a partial update.
func (r UpdateTaskRequest) ToDomain() domain.TaskUpdate {
	return domain.TaskUpdate{
		Title:       domain.FromPtr(r.Title),
		Description: domain.FromPtr(r.Description),
		Completed:   domain.FromPtr(r.Completed),
	}
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	TasksCount int    `json:"tasks_count"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   domain.FormatTimestamp(t.CreatedAt),
	}
}

// tasksToResponse never returns nil so an empty list encodes as [].
func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
