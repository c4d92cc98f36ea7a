// Package worker drains queued run requests and executes them. Each worker
// runs batches one at a time; the pool size controls how many experiments
// may execute concurrently, each against its own roster clone.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/pkg/logger"
	"github.com/okian/laddersim/pkg/metrics"
)

// Shutdown timeouts.
const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Request is what workers read off the queue.
type Request = model.RunRequest

// Executor runs one batch described by a run request.
type Executor interface {
	ExecuteRun(ctx context.Context, req Request) error
}

// Queue defines how workers receive run requests.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Request
}

// Worker processes run requests from the queue until stopped.
type Worker struct {
	queue    Queue
	executor Executor
	name     string

	shutdown chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger logger.Logger
}

// New creates a worker with configuration options.
func New(queue Queue, executor Executor, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		executor: executor,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	requests := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			if err := w.process(ctx, req); err != nil {
				w.logger.Error(ctx, "run failed",
					logger.String("runID", req.RunID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker. Safe to call more than once.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process executes a single run request.
func (w *Worker) process(ctx context.Context, req Request) error {
	start := time.Now()
	err := w.executor.ExecuteRun(ctx, req)
	metrics.RecordRunDuration(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordRunFailed()
		metrics.RecordErrorByComponent("worker", "run_error")
		return fmt.Errorf("execute run %s: %w", req.RunID, err)
	}
	metrics.RecordRunCompleted()
	return nil
}

// Pool manages multiple run workers.
type Pool struct {
	workers []*Worker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers reading from queue. A
// count below one collapses to a single worker, which keeps run commits
// strictly sequential.
func NewPool(workerCount int, queue Queue, executor Executor) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = New(queue, executor, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerActiveCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop stops all workers, waiting briefly for each to finish.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
}

// Shutdown closes the queue and waits for workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
