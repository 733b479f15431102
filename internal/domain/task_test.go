package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		before := time.Now().UTC()
		task, err := NewTask("Buy milk", "two litres")
		require.NoError(t, err)

		_, parseErr := uuid.Parse(task.ID)
		assert.NoError(t, parseErr, "ID should be a UUID")
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "two litres", task.Description)
		assert.False(t, task.Completed)
		assert.False(t, task.CreatedAt.Before(before))
		assert.Equal(t, time.UTC, task.CreatedAt.Location())
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewTask("", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyTitle))
		assert.True(t, errors.Is(err, ErrValidation))

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "title", verr.Fields[0].Field)
	})

	t.Run("unique IDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 500; i++ {
			task, err := NewTask("t", "")
			require.NoError(t, err)
			assert.False(t, seen[task.ID], "duplicate ID generated")
			seen[task.ID] = true
		}
	})
}

func TestTaskValidate(t *testing.T) {
	valid := Task{ID: "abc", Title: "x", CreatedAt: time.Now()}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{name: "valid", mutate: func(*Task) {}},
		{name: "empty id", mutate: func(t *Task) { t.ID = "" }, wantErr: ErrEmptyTaskID},
		{name: "empty title", mutate: func(t *Task) { t.Title = "" }, wantErr: ErrEmptyTitle},
		{name: "zero created_at", mutate: func(t *Task) { t.CreatedAt = time.Time{} }, wantErr: ErrMissingCreatedAt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := valid
			tc.mutate(&task)
			err := task.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTaskApply(t *testing.T) {
	original := Task{
		ID:          "id-1",
		Title:       "Write report",
		Description: "quarterly",
		Completed:   false,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("only completed", func(t *testing.T) {
		updated, err := original.Apply(TaskUpdate{Completed: Some(true)})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, original.Title, updated.Title)
		assert.Equal(t, original.Description, updated.Description)
		assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	})

	t.Run("only title", func(t *testing.T) {
		updated, err := original.Apply(TaskUpdate{Title: Some("Write summary")})
		require.NoError(t, err)
		assert.Equal(t, "Write summary", updated.Title)
		assert.Equal(t, original.Description, updated.Description)
		assert.Equal(t, original.Completed, updated.Completed)
	})

	t.Run("explicit empty description is applied", func(t *testing.T) {
		updated, err := original.Apply(TaskUpdate{Description: Some("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Description)
	})

	t.Run("explicit false is applied", func(t *testing.T) {
		done := original
		done.Completed = true
		updated, err := done.Apply(TaskUpdate{Completed: Some(false)})
		require.NoError(t, err)
		assert.False(t, updated.Completed)
	})

	t.Run("empty title rejected and receiver untouched", func(t *testing.T) {
		updated, err := original.Apply(TaskUpdate{Title: Some(""), Completed: Some(true)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.Equal(t, original, updated)
	})

	t.Run("empty update", func(t *testing.T) {
		u := TaskUpdate{}
		assert.True(t, u.IsEmpty())
		updated, err := original.Apply(u)
		require.NoError(t, err)
		assert.Equal(t, original, updated)
	})
}

func TestTaskToggled(t *testing.T) {
	task := Task{ID: "id", Title: "t", CreatedAt: time.Now()}
	once := task.Toggled()
	assert.True(t, once.Completed)
	assert.False(t, task.Completed, "receiver must not change")
	assert.Equal(t, task.Completed, once.Toggled().Completed)
}

func TestOptional(t *testing.T) {
	none := None[string]()
	_, ok := none.Get()
	assert.False(t, ok)
	assert.Equal(t, "fallback", none.OrElse("fallback"))

	empty := Some("")
	v, ok := empty.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "", empty.OrElse("fallback"))

	var nilPtr *bool
	assert.False(t, FromPtr(nilPtr).IsSet())
	f := false
	got, ok := FromPtr(&f).Get()
	assert.True(t, ok)
	assert.False(t, got)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required", nil)
	err.Add("completed", "must be a boolean")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "completed must be a boolean")
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 5, 123456789, time.FixedZone("CET", 3600))
	assert.Equal(t, "2025-03-01T08:30:05.123456Z", FormatTimestamp(ts))

	whole := time.Date(2025, 3, 1, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "2025-03-01T09:30:05.000000Z", FormatTimestamp(whole))
}
