package touch

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CancelFunc cancels a scheduled timeout. Calling it more than once, or
// after the timeout fired, is a no-op.
type CancelFunc func()

// Timeout identifies the trajectory a long-press timer was armed for.
type Timeout struct {
	Sequence uuid.UUID
}

// Scheduler arms long-press timers. When a timeout elapses the scheduler
// must deliver it to Tracker.LongPressElapsed on the tracker's event loop.
type Scheduler interface {
	Schedule(d time.Duration, t Timeout) CancelFunc
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, t Timeout) CancelFunc

// Schedule calls f(d, t).
func (f SchedulerFunc) Schedule(d time.Duration, t Timeout) CancelFunc {
	return f(d, t)
}

// AfterFuncScheduler arms timers with time.AfterFunc. Fire runs on the
// timer goroutine, so it must hand the timeout over to the event loop rather
// than touch the tracker directly.
type AfterFuncScheduler struct {
	Fire func(Timeout)
}

// Schedule arms a real timer.
func (s AfterFuncScheduler) Schedule(d time.Duration, t Timeout) CancelFunc {
	timer := time.AfterFunc(d, func() {
		if s.Fire != nil {
			s.Fire(t)
		}
	})
	var once sync.Once
	return func() {
		once.Do(func() { timer.Stop() })
	}
}
