package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the wire format of task timestamps: UTC with a fixed
// six-digit fraction.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Task is a single to-do item tracked by the service.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskUpdate is a partial update to a Task. Unset fields leave the stored
// value untouched; a field set to its zero value ("" or false) is applied.
type TaskUpdate struct {
	Title       Optional[string]
	Description Optional[string]
	Completed   Optional[bool]
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return !u.Title.IsSet() && !u.Description.IsSet() && !u.Completed.IsSet()
}

// NewTask creates a new, not yet completed Task with a random UUID
// identifier and the current UTC time as its creation timestamp.
// Returns an error if validation fails.
func NewTask(title, description string) (Task, error) {
	task := Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}

	if t.CreatedAt.IsZero() {
		return ErrMissingCreatedAt
	}

	return nil
}

// Apply returns a copy of t with every set field of u applied.
// The receiver is left untouched, and the copy is validated before being returned.
func (t Task) Apply(u TaskUpdate) (Task, error) {
	updated := t

	if title, ok := u.Title.Get(); ok {
		updated.Title = title
	}
	if description, ok := u.Description.Get(); ok {
		updated.Description = description
	}
	if completed, ok := u.Completed.Get(); ok {
		updated.Completed = completed
	}

	if err := updated.Validate(); err != nil {
		return t, err
	}

	return updated, nil
}

// Toggled returns a copy of t with Completed flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
