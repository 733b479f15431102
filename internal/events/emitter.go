package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Dispatcher delivers task events to its subscribers synchronously, in
// subscription order. Subscribing while events are in flight is safe; an
// event goes to the subscribers present when it was emitted.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []EventHandler
	logger      *slog.Logger
}

// NewDispatcher returns a Dispatcher with no subscribers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger.With("component", "event_dispatcher")}
}

// Subscribe adds h to the receivers of every later event.
func (d *Dispatcher) Subscribe(h EventHandler) {
	d.mu.Lock()
	d.subscribers = append(d.subscribers, h)
	n := len(d.subscribers)
	d.mu.Unlock()

	d.logger.Debug("event subscriber added", "subscribers", n)
}

// EmitEvent implements EventEmitter. Every subscriber sees the event even when
// an earlier one fails; the failures come back joined.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *TaskEvent) error {
	d.mu.RLock()
	subscribers := slices.Clone(d.subscribers)
	d.mu.RUnlock()

	log := d.logger.With("event_id", event.ID, "event_type", event.Type, "task_id", event.TaskID)
	log.Debug("dispatching task event", "subscribers", len(subscribers))

	var errs []error
	for i, h := range subscribers {
		if err := h.HandleEvent(ctx, event); err != nil {
			log.Error("event subscriber failed", "subscriber", i, "error", err)
			errs = append(errs, fmt.Errorf("subscriber %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
