package dispatcher

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Runner executes dispatched actions.
type Runner interface {
	Run(name string, fn func()) error
}

// Inline runs actions synchronously on the caller's goroutine.
type Inline struct{}

// Run calls fn immediately.
func (Inline) Run(_ string, fn func()) error {
	fn()
	return nil
}

// Queue executes actions in order on a single worker goroutine. It provides
// bounded queuing, panic recovery and graceful shutdown.
type Queue struct {
	size   int
	logger *zap.Logger
	onDrop func(name string)

	mu      sync.Mutex // protects queue creation/destruction
	tasks   chan task
	running atomic.Bool
	wg      sync.WaitGroup

	enqueued  atomic.Uint64
	processed atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
}

type task struct {
	name string
	fn   func()
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueLogger sets the logger used for drop and panic reports.
func WithQueueLogger(l *zap.Logger) QueueOption {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithDropHandler sets a callback invoked when an action is dropped.
func WithDropHandler(fn func(name string)) QueueOption {
	return func(q *Queue) {
		q.onDrop = fn
	}
}

// NewQueue creates a queue holding at most size pending actions.
func NewQueue(size int, opts ...QueueOption) *Queue {
	if size <= 0 {
		size = DefaultConfig().QueueSize
	}
	q := &Queue{
		size:   size,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start starts the worker.
func (q *Queue) Start() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running.Load() {
		return ErrAlreadyRunning
	}

	q.tasks = make(chan task, q.size)
	q.running.Store(true)

	q.wg.Add(1)
	go q.worker(q.tasks)

	return nil
}

// Stop stops the worker after it drains the queued actions, or when ctx is
// done, whichever comes first.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running.Load() {
		q.mu.Unlock()
		return ErrNotRunning
	}
	q.running.Store(false)
	close(q.tasks)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run enqueues fn. It never blocks: a full queue drops the action and
// returns ErrQueueFull.
func (q *Queue) Run(name string, fn func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running.Load() {
		q.drop(name, ErrNotRunning)
		return ErrNotRunning
	}

	select {
	case q.tasks <- task{name: name, fn: fn}:
		q.enqueued.Add(1)
		return nil
	default:
		q.drop(name, ErrQueueFull)
		return ErrQueueFull
	}
}

func (q *Queue) drop(name string, reason error) {
	q.dropped.Add(1)
	q.logger.Debug("action dropped", zap.String("action", name), zap.Error(reason))
	if q.onDrop != nil {
		q.onDrop(name)
	}
}

func (q *Queue) worker(tasks <-chan task) {
	defer q.wg.Done()
	for t := range tasks {
		q.execute(t)
	}
}

func (q *Queue) execute(t task) {
	defer func() {
		if r := recover(); r != nil {
			q.panicked.Add(1)
			q.logger.Error("action panicked",
				zap.String("action", t.name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	q.processed.Add(1)
	t.fn()
}

// Running reports whether the worker is running.
func (q *Queue) Running() bool {
	return q.running.Load()
}

// Depth returns the number of pending actions.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.running.Load() {
		return 0
	}
	return len(q.tasks)
}

// QueueStats contains queue statistics.
type QueueStats struct {
	Enqueued  uint64
	Processed uint64
	Panicked  uint64
	Dropped   uint64
}

// Stats returns a snapshot of queue statistics.
func (q *Queue) Stats() QueueStats {
	return QueueStats{
		Enqueued:  q.enqueued.Load(),
		Processed: q.processed.Load(),
		Panicked:  q.panicked.Load(),
		Dropped:   q.dropped.Load(),
	}
}
