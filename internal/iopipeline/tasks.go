package iopipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/barcraft/bardb/pkg/retry"
	"golang.org/x/sync/errgroup"
)

// task is one node of the run graph. Its only hand-off to downstream
// tasks is state written before its done channel closes.
type task struct {
	name string
	deps []string

	// retryable marks tasks whose failures are transient (upstream
	// fetches, store round-trips). Validation and transform failures
	// are deterministic and never retried.
	retryable bool

	run func(ctx context.Context) error
}

// runGraph executes the tasks respecting their dependencies.
// Independent tasks run concurrently; the first failure cancels the
// rest of the graph.
func (p *pipeline) runGraph(ctx context.Context, tasks []task) error {
	done := make(map[string]chan struct{}, len(tasks))
	for _, t := range tasks {
		done[t.name] = make(chan struct{})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			for _, dep := range t.deps {
				select {
				case <-done[dep]:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			release, err := acquireTaskName(ctx, t.name)
			if err != nil {
				return err
			}
			defer release()

			start := time.Now()
			slog.Info("Task started", "task", t.name)

			if err := p.runTask(ctx, t); err != nil {
				slog.Error("Task failed",
					"task", t.name, "error", err)
				return TaskFailedError(t.name, err)
			}

			slog.Info("Task finished",
				"task", t.name, "duration", time.Since(start))
			close(done[t.name])
			return nil
		})
	}
	return g.Wait()
}

func (p *pipeline) runTask(ctx context.Context, t task) error {
	if !t.retryable {
		return t.run(ctx)
	}

	pol := retry.Policy{
		Attempts: p.cfg.Pipeline.TaskAttempts,
		Delay: time.Duration(
			p.cfg.Pipeline.TaskDelaySec) * time.Second,
	}
	return pol.Do(ctx, t.name, func() error { return t.run(ctx) })
}

// Process-wide task name registry. A task name held by one run blocks
// the same task of a concurrent run until it is released.
var (
	taskMu    sync.Mutex
	taskLocks = make(map[string]chan struct{})
)

func acquireTaskName(
	ctx context.Context, name string,
) (func(), error) {
	taskMu.Lock()
	lock, ok := taskLocks[name]
	if !ok {
		lock = make(chan struct{}, 1)
		taskLocks[name] = lock
	}
	taskMu.Unlock()

	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-ctx.Done():
		return nil, TaskConflictError(name, ctx.Err())
	}
}
