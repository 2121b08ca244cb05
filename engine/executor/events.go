package executor

import (
	"context"
	"time"

	"github.com/symflow/symflow/engine/core"
	"github.com/symflow/symflow/pkg/logger"
)

// Event describes the outcome of one execution attempt for the external
// event sink.
type Event struct {
	Task     string
	ExecID   core.ID
	Success  bool
	Duration time.Duration
	Metadata map[string]any
}

// EventSink receives execution events. Emission is best-effort: a sink that
// fails or panics must never fail the task call itself.
type EventSink interface {
	Emit(ctx context.Context, event *Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(context.Context, *Event) {}

// emit delivers an event to the configured sink, swallowing panics locally.
func (e *Executor) emit(ctx context.Context, event *Event) {
	if e.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Warn("Event sink panicked; event dropped",
				"task", event.Task,
				"panic", r,
			)
		}
	}()
	e.sink.Emit(ctx, event)
}
