package store

import (
	"context"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskStore defines the interface for task storage.
// Implementations must be safe for concurrent use: every mutation is atomic
// with respect to every other operation, and no caller may observe a task
// mid-mutation. Tasks are returned by value so no caller shares state with
// the store.
type TaskStore interface {
	// Create stores a new task with the given title and description.
	// The store assigns the ID and creation time; Completed starts false.
	// Returns a validation error if the resulting task is invalid.
	Create(ctx context.Context, title, description string) (domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (domain.Task, error)

	// List returns every stored task in insertion order.
	List(ctx context.Context) ([]domain.Task, error)

	// Update applies the set fields of the partial update to a task and
	// returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error)

	// Toggle flips the Completed flag of a task and returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	Toggle(ctx context.Context, id string) (domain.Task, error)

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist, including on a
	// second delete of the same ID.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int, error)
}
