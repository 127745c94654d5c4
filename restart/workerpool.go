package restart

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TaskResult is one worker's contribution to an awaited fan-out. OK is false
// when the task declined to run (⊥), was swallowed after an inner error, or
// was recovered from a panic at the pool boundary.
type TaskResult[R any] struct {
	Value R
	OK    bool
}

// Task is one worker's unit of submitted work.
type Task[R any] func(ctx context.Context) (R, bool, error)

// WorkerPool owns a fixed worker count and a submit/await/interrupt/close
// primitive built on errgroup, generalizing the teacher's goroutine-per-agent
// fan-out (reinforcement.alpha_mc_train_vanilla_parallel) into a reusable,
// one-shot pool. A pool is one-shot only in the sense that Close is final;
// SubmitAll may be called repeatedly while open.
type WorkerPool[R any] struct {
	mu     sync.Mutex
	size   int
	closed bool
}

// NewWorkerPool constructs a pool with the given worker count, which must be
// >= 1.
func NewWorkerPool[R any](size int) (*WorkerPool[R], error) {
	if size < 1 {
		return nil, ErrInvalidPoolSize
	}
	return &WorkerPool[R]{size: size}, nil
}

// Size returns the pool's worker count.
func (p *WorkerPool[R]) Size() int {
	return p.size
}

// Handle tracks one SubmitAll call's in-flight tasks.
type Handle[R any] struct {
	group   *errgroup.Group
	cancel  context.CancelFunc
	results []TaskResult[R]
}

// SubmitAll schedules exactly one task per worker and returns a handle.
// len(tasks) need not equal the pool size; it is the caller's responsibility
// to partition its work across the pool's declared capacity.
func (p *WorkerPool[R]) SubmitAll(ctx context.Context, tasks []Task[R]) (*Handle[R], error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	results := make([]TaskResult[R], len(tasks))

	for i, task := range tasks {
		i, task := i, task
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					results[i] = TaskResult[R]{}
				}
			}()
			value, ok, taskErr := task(groupCtx)
			if taskErr != nil {
				results[i] = TaskResult[R]{}
				return nil
			}
			results[i] = TaskResult[R]{Value: value, OK: ok}
			return nil
		})
	}

	return &Handle[R]{group: group, cancel: cancel, results: results}, nil
}

// AwaitAll blocks until every submitted task has completed, returned ⊥, or
// been swallowed at the pool boundary, then returns the per-worker result
// vector in submission order. It never itself returns an error: per-worker
// failures are already folded into a false OK.
func (p *WorkerPool[R]) AwaitAll(h *Handle[R]) []TaskResult[R] {
	_ = h.group.Wait()
	return h.results
}

// InterruptAll cancels every in-flight task's context, giving each worker's
// inner search a chance to return its current best at the next suspension
// point, then awaits and returns the result vector.
func (p *WorkerPool[R]) InterruptAll(h *Handle[R]) []TaskResult[R] {
	h.cancel()
	return p.AwaitAll(h)
}

// Close shuts the pool down; further SubmitAll calls fail with
// ErrPoolClosed. Close is idempotent.
func (p *WorkerPool[R]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// IsClosed reports whether Close has been called.
func (p *WorkerPool[R]) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
