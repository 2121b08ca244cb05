// Package executor drives task execution: it resolves the execution strategy
// for a task, enforces per-attempt deadlines, classifies failures, and retries
// transient ones with capped exponential backoff.
//
// Deadlines are cooperative. The dispatched work receives a context that is
// canceled at the deadline; a callable that ignores its context keeps running
// detached in the background while the caller already observed the timeout.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/symflow/symflow/engine/core"
	"github.com/symflow/symflow/engine/llm"
	"github.com/symflow/symflow/engine/task"
	"github.com/symflow/symflow/pkg/config"
	"github.com/symflow/symflow/pkg/logger"
)

// maxLoggedCause bounds how much of a cause chain is written to logs.
const maxLoggedCause = 300

// taskEntry caches per-task dispatch data so the hot path resolves kind and
// deadline without re-deriving them.
type taskEntry struct {
	cfg     *task.Config
	kind    task.Kind
	timeout time.Duration
}

// Executor orchestrates task execution against a registry of task configs.
type Executor struct {
	registry *task.Registry
	cfg      *config.Config
	runner   *llm.Runner
	sink     EventSink
	usage    *UsageTracker
	entries  map[string]taskEntry
	sleep    func(ctx context.Context, d time.Duration) error
}

type Option func(*Executor)

// WithClient wires the generative-model backend used for neural tasks.
func WithClient(client llm.Client) Option {
	return func(e *Executor) {
		e.runner = llm.NewRunner(client, e.usage)
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(e *Executor) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

func WithEventSink(sink EventSink) Option {
	return func(e *Executor) {
		e.sink = sink
	}
}

// New builds an executor and its timeout table. Task configs are borrowed
// read-only; registering tasks after construction has no effect on the table.
func New(registry *task.Registry, opts ...Option) (*Executor, error) {
	if registry == nil {
		return nil, fmt.Errorf("task registry is required")
	}
	e := &Executor{
		registry: registry,
		cfg:      config.Default(),
		sink:     NopSink{},
		usage:    NewUsageTracker(),
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	entries := make(map[string]taskEntry, registry.Len())
	for _, name := range registry.Names() {
		cfg, ok := registry.Get(name)
		if !ok {
			continue
		}
		kind, err := cfg.Kind()
		if err != nil {
			return nil, err
		}
		entries[name] = taskEntry{
			cfg:     cfg,
			kind:    kind,
			timeout: e.defaultTimeout(kind),
		}
	}
	e.entries = entries
	return e, nil
}

func (e *Executor) defaultTimeout(kind task.Kind) time.Duration {
	switch kind {
	case task.KindSymbolic:
		return e.cfg.TimeoutSymbolic
	case task.KindNeural:
		return e.cfg.TimeoutNeural
	default:
		// Hybrid carries neural risk: other configurations may still reach
		// the generative backend.
		return e.cfg.TimeoutHybrid
	}
}

// Usage returns the engine-owned accounting counters.
func (e *Executor) Usage() *UsageTracker {
	return e.usage
}

// -----------------------------------------------------------------------------
// Call options
// -----------------------------------------------------------------------------

type callSettings struct {
	timeout    time.Duration
	maxRetries int
}

type CallOption func(*callSettings)

// WithTimeout overrides the per-attempt deadline for this call.
func WithTimeout(d time.Duration) CallOption {
	return func(s *callSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxRetries overrides the retry budget for this call.
func WithMaxRetries(n int) CallOption {
	return func(s *callSettings) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// -----------------------------------------------------------------------------
// Execute
// -----------------------------------------------------------------------------

// Execute runs the named task to completion: input validation, dispatch under
// the resolved deadline, output validation, and classified retries in between.
// The returned error is always a *TaskError.
func (e *Executor) Execute(
	ctx context.Context,
	name string,
	input core.Input,
	opts ...CallOption,
) (core.Output, error) {
	entry, ok := e.entries[name]
	if !ok {
		return nil, NewTaskError(name, CategoryValidation, fmt.Errorf(
			"unknown task %q. Known tasks: [%s]",
			name, strings.Join(e.registry.Names(), ", "),
		))
	}
	settings := callSettings{
		timeout:    entry.timeout,
		maxRetries: e.cfg.MaxRetries,
	}
	for _, opt := range opts {
		opt(&settings)
	}
	log := logger.FromContext(ctx)
	execID := core.MustNewID()
	backoff := retry.WithCappedDuration(e.cfg.RetryDelayMax, retry.NewExponential(e.cfg.RetryDelayBase))
	var lastErr error
	for attempt := 0; attempt <= settings.maxRetries; attempt++ {
		start := time.Now()
		output, err := e.runAttempt(ctx, &entry, input, settings.timeout)
		elapsed := time.Since(start)
		if err == nil {
			e.emit(ctx, &Event{
				Task:     name,
				ExecID:   execID,
				Success:  true,
				Duration: elapsed,
				Metadata: map[string]any{
					"kind":    entry.kind.String(),
					"attempt": attempt,
				},
			})
			return output, nil
		}
		category := Classify(err)
		log.Error("Task attempt failed",
			"task", name,
			"category", category,
			"attempt", attempt,
			"elapsed", elapsed,
			"error", truncateCause(err),
		)
		e.emit(ctx, &Event{
			Task:     name,
			ExecID:   execID,
			Success:  false,
			Duration: elapsed,
			Metadata: map[string]any{
				"kind":       entry.kind.String(),
				"attempt":    attempt,
				"category":   category.String(),
				"error_type": fmt.Sprintf("%T", err),
			},
		})
		lastErr = err
		if !Retryable(err) || attempt == settings.maxRetries {
			break
		}
		delay, stop := backoff.Next()
		if stop {
			break
		}
		log.Debug("Retrying task after backoff",
			"task", name,
			"attempt", attempt,
			"delay", delay,
		)
		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			lastErr = sleepErr
			break
		}
	}
	return nil, e.wrapTerminal(name, lastErr)
}

// wrapTerminal turns the last observed failure into the classified error the
// caller sees. Callers never observe a raw, unclassified failure.
func (e *Executor) wrapTerminal(name string, err error) *TaskError {
	if taskErr, ok := err.(*TaskError); ok && taskErr.Task == name {
		return taskErr
	}
	return NewTaskError(name, Classify(err), err)
}

// runAttempt performs one attempt: validate inputs, dispatch with a deadline,
// validate outputs. When the deadline elapses, the attempt reports a timeout
// regardless of any failure the dispatched work produced concurrently.
func (e *Executor) runAttempt(
	ctx context.Context,
	entry *taskEntry,
	input core.Input,
	timeout time.Duration,
) (core.Output, error) {
	validated, err := entry.cfg.Input.Validate(input, "input")
	if err != nil {
		return nil, err
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	type attemptResult struct {
		output core.Output
		err    error
	}
	done := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptResult{err: NewTaskError(
					entry.cfg.Name,
					CategorySystem,
					fmt.Errorf("panic in task body: %v", r),
				)}
			}
		}()
		output, dispatchErr := e.dispatch(attemptCtx, entry, core.Input(validated))
		done <- attemptResult{output: output, err: dispatchErr}
	}()
	select {
	case res := <-done:
		if deadlineElapsed(attemptCtx) {
			return nil, e.timeoutError(entry, timeout, res.err)
		}
		if res.err != nil {
			return nil, res.err
		}
		validatedOut, outErr := entry.cfg.Output.Validate(res.output, "output")
		if outErr != nil {
			return nil, outErr
		}
		return core.Output(validatedOut), nil
	case <-attemptCtx.Done():
		if deadlineElapsed(attemptCtx) {
			return nil, e.timeoutError(entry, timeout, nil)
		}
		return nil, attemptCtx.Err()
	}
}

func deadlineElapsed(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}

// timeoutError builds the timeout-tagged error for an elapsed deadline. Any
// failure the dispatched work produced concurrently is kept as the wrapped
// cause for diagnostics; the classifier never lets it override the tag.
func (e *Executor) timeoutError(entry *taskEntry, timeout time.Duration, cause error) *TaskError {
	if cause == nil {
		cause = fmt.Errorf("attempt exceeded %s deadline: %w", timeout, context.DeadlineExceeded)
	} else {
		cause = fmt.Errorf("attempt exceeded %s deadline (concurrent failure: %w)", timeout, cause)
	}
	return NewTaskError(entry.cfg.Name, CategoryTimeout, cause)
}

// dispatch resolves the execution strategy. Symbolic-capable tasks always
// take the deterministic path, hybrid included; only pure neural tasks reach
// the generative backend.
func (e *Executor) dispatch(ctx context.Context, entry *taskEntry, input core.Input) (core.Output, error) {
	switch entry.kind {
	case task.KindSymbolic, task.KindHybrid:
		return entry.cfg.Func(ctx, input)
	case task.KindNeural:
		if e.runner == nil {
			return nil, NewTaskError(
				entry.cfg.Name,
				CategorySystem,
				fmt.Errorf("no generative-model client configured"),
			)
		}
		return e.runner.Run(ctx, entry.cfg, input)
	default:
		return nil, NewTaskError(
			entry.cfg.Name,
			CategoryValidation,
			fmt.Errorf("task %q has no executable strategy", entry.cfg.Name),
		)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncateCause(err error) string {
	msg := err.Error()
	if len(msg) <= maxLoggedCause {
		return msg
	}
	return msg[:maxLoggedCause] + "..."
}
