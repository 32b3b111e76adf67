package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrAlreadyRunning is returned when Start is called on a running queue.
	ErrAlreadyRunning = errors.New("dispatcher: queue is already running")

	// ErrNotRunning is returned when operations are attempted on a stopped queue.
	ErrNotRunning = errors.New("dispatcher: queue is not running")

	// ErrQueueFull is returned when the queue cannot accept more work.
	ErrQueueFull = errors.New("dispatcher: queue is full")
)
