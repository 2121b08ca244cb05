package executor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/symflow/symflow/engine/core"
)

// Unit is one task invocation inside a batch.
type Unit struct {
	Task  string
	Input core.Input
	Opts  []CallOption
}

// ExecuteMany runs a batch of independent invocations over a bounded worker
// pool. Results are ordered by submission, not completion. The batch is
// fail-fast: the first unit to exhaust its own retries fails the whole call
// and cancels the context seen by units still in flight; partial sibling
// outputs are discarded.
func (e *Executor) ExecuteMany(ctx context.Context, units []Unit, concurrency int) ([]core.Output, error) {
	if len(units) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = e.cfg.ParallelWorkers
	}
	results := make([]core.Output, len(units))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for idx := range units {
		unit := &units[idx]
		group.Go(func() error {
			output, err := e.Execute(groupCtx, unit.Task, unit.Input, unit.Opts...)
			if err != nil {
				return err
			}
			results[idx] = output
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
