package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/pavelc4/aether-resolver/pkg/logger"
)

var (
	ErrQueueFull = errors.New("worker pool queue is full")
	ErrStopped   = errors.New("worker pool stopped")
	ErrAbandoned = errors.New("job abandoned before it started")
)

type Job func() error

// Pool runs jobs with at most maxWorkers in flight. Jobs beyond that wait in
// FIFO order; maxQueue bounds the number of waiting jobs, 0 means unbounded.
// A job that finds a free worker never counts as waiting.
type Pool struct {
	maxWorkers int
	maxQueue   int
	sem        *semaphore.Weighted
	waiting    atomic.Int64
	active     atomic.Int64
	wg         sync.WaitGroup
	stopped    bool
	mu         sync.Mutex
}

func NewPool(maxWorkers, maxQueue int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if maxQueue < 0 {
		maxQueue = 0
	}
	return &Pool{
		maxWorkers: maxWorkers,
		maxQueue:   maxQueue,
		sem:        semaphore.NewWeighted(int64(maxWorkers)),
	}
}

type task struct {
	job       Job
	done      chan error
	abandoned atomic.Bool
}

// Submit queues job and returns a channel that receives its result.
func (p *Pool) Submit(job Job) (<-chan error, error) {
	t, err := p.submit(job)
	if err != nil {
		return nil, err
	}
	return t.done, nil
}

// submit starts job on a free worker, or queues it when all workers are busy.
// Only queued jobs count against maxQueue.
func (p *Pool) submit(job Job) (*task, error) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil, ErrStopped
	}

	t := &task{job: job, done: make(chan error, 1)}
	if p.sem.TryAcquire(1) {
		p.active.Add(1)
		p.wg.Add(1)
		p.mu.Unlock()
		go p.execute(t)
		return t, nil
	}

	if p.maxQueue > 0 && p.waiting.Load() >= int64(p.maxQueue) {
		p.mu.Unlock()
		return nil, ErrQueueFull
	}
	p.waiting.Add(1)
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		// Acquire cannot fail with a background context.
		_ = p.sem.Acquire(context.Background(), 1)
		p.waiting.Add(-1)
		if t.abandoned.Load() {
			p.sem.Release(1)
			t.done <- ErrAbandoned
			p.wg.Done()
			return
		}
		p.active.Add(1)
		p.execute(t)
	}()
	return t, nil
}

// execute runs t on a worker slot that is already held.
func (p *Pool) execute(t *task) {
	defer p.wg.Done()
	defer func() {
		p.active.Add(-1)
		p.sem.Release(1)
	}()
	t.done <- run(t.job)
}

// Do submits job and waits for its result or for ctx to end, whichever is
// first. A job still queued when ctx ends is dropped; a running one keeps its
// worker until it returns.
func (p *Pool) Do(ctx context.Context, job Job) error {
	t, err := p.submit(job)
	if err != nil {
		return err
	}

	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		t.abandoned.Store(true)
		return ctx.Err()
	}
}

func run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Worker job panicked", "error", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job()
}

// Stop rejects new jobs and waits for queued and running ones to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) Size() int {
	return p.maxWorkers
}

func (p *Pool) Active() int {
	return int(p.active.Load())
}

func (p *Pool) Waiting() int {
	return int(p.waiting.Load())
}
