// Package worker provides a worker pool for resolving many files in
// parallel.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Task represents a task to be executed by a worker.
type Task interface {
	Execute(ctx context.Context) error
	ID() string
}

// Result contains the result of a task execution.
type Result struct {
	TaskID   string
	Error    error
	Duration time.Duration
}

// Pool manages a pool of workers for parallel processing.
type Pool struct {
	workers   int
	tasks     chan Task
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	started   atomic.Bool
	processed atomic.Int64
	errors    atomic.Int64
}

// Config configures the worker pool.
type Config struct {
	Workers   int // Number of workers (default: GOMAXPROCS)
	QueueSize int // Size of task queue (default: workers * 2)
}

// NewPool creates a new worker pool. Cancelling ctx stops the workers.
func NewPool(ctx context.Context, cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = cfg.Workers * 2
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers: cfg.Workers,
		tasks:   make(chan Task, cfg.QueueSize),
		results: make(chan Result, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the worker pool.
func (p *Pool) Start() {
	if p.started.Swap(true) {
		return // Already started
	}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case task, ok := <-p.tasks:
			if !ok {
				return
			}

			start := time.Now()
			err := task.Execute(p.ctx)

			p.processed.Add(1)
			if err != nil {
				p.errors.Add(1)
			}

			select {
			case p.results <- Result{TaskID: task.ID(), Error: err, Duration: time.Since(start)}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit submits a task to the pool.
func (p *Pool) Submit(task Task) error {
	if !p.started.Load() {
		return fmt.Errorf("pool not started")
	}

	select {
	case p.tasks <- task:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Results returns the results channel.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Stop stops the pool without waiting for queued tasks.
func (p *Pool) Stop() {
	p.cancel()
	close(p.tasks)
	p.wg.Wait()
	close(p.results)
}

// StopWait stops the pool and waits for all tasks to complete.
func (p *Pool) StopWait() {
	close(p.tasks)
	p.wg.Wait()
	p.cancel()
	close(p.results)
}

// Stats returns pool statistics.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.workers,
		Processed: p.processed.Load(),
		Errors:    p.errors.Load(),
		Pending:   len(p.tasks),
	}
}

// Stats contains pool statistics.
type Stats struct {
	Workers   int
	Processed int64
	Errors    int64
	Pending   int
}

// String returns a string representation of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("workers=%d processed=%d errors=%d pending=%d",
		s.Workers, s.Processed, s.Errors, s.Pending)
}

// Run executes tasks on a new pool and returns their results in submission
// order together with the pool statistics. Task IDs must be unique. Task
// errors are reported in the results; the returned error is only set when
// ctx ends first.
func Run(ctx context.Context, cfg Config, tasks []Task) ([]Result, Stats, error) {
	p := NewPool(ctx, cfg)
	p.Start()

	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.ID()] = i
	}

	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for _, t := range tasks {
			if p.Submit(t) != nil {
				return
			}
		}
	}()

	results := make([]Result, len(tasks))
	for received := 0; received < len(tasks); received++ {
		select {
		case r := <-p.Results():
			results[index[r.TaskID]] = r
		case <-ctx.Done():
			<-submitted
			p.Stop()
			return nil, p.Stats(), ctx.Err()
		}
	}

	<-submitted
	p.StopWait()
	if err := ctx.Err(); err != nil {
		return nil, p.Stats(), err
	}
	return results, p.Stats(), nil
}
