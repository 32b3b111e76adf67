// Package app owns the gesture pipeline and the event loop it runs on.
//
// An Application wires the threshold profile store, the touch tracker, the
// action dispatcher and the coordinate forwarder together. Every tracker
// transition, long-press timer callback and orientation recalibration runs
// on the single goroutine executing Run, so none of them need locking. Host
// callbacks (HandleTouch, OrientationChanged, ReloadCalibration) may be
// called from any goroutine.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/dispatcher"
	"github.com/dshills/swipeshell/internal/forward"
	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
	"github.com/dshills/swipeshell/internal/input/touch"
)

// DefaultOrientationDebounce is how long layout is given to settle after an
// orientation change before the profile is recalibrated.
const DefaultOrientationDebounce = 100 * time.Millisecond

// Display shows and hides gesture indicators. Hiding an indicator that is
// not shown must be a no-op.
type Display interface {
	ShowIndicator(i touch.Indicator)
	HideHorizontal()
	HideIndicators()
}

// Options configures the application.
type Options struct {
	// Calibration holds the thresholds. Zero means profile.DefaultCalibration.
	Calibration profile.Calibration

	// Orientation is the initial device orientation.
	Orientation profile.Orientation

	// OrientationDebounce delays recalibration. Negative means no delay.
	OrientationDebounce time.Duration

	// Display is the indicator overlay. It is required.
	Display Display

	// Navigator and Feedback receive dispatched actions.
	Navigator dispatcher.Navigator
	Feedback  dispatcher.Feedback

	// Surface and Channel reach the embedded child surface.
	Surface forward.Surface
	Channel forward.Channel

	// Dispatch configures action bindings and the queue size.
	Dispatch dispatcher.Config

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Scheduler overrides the long-press timer source, for tests.
	Scheduler touch.Scheduler
}

// Application is the explicitly constructed owner of the gesture pipeline.
type Application struct {
	logger *zap.Logger

	profiles   *profile.Store
	tracker    *touch.Tracker
	dispatcher *dispatcher.Dispatcher
	queue      *dispatcher.Queue
	forwarder  *forward.Forwarder
	display    Display

	inputMetrics    *input.Metrics
	dispatchMetrics *dispatcher.Metrics
	loopMetrics     *LoopMetrics

	disabled bool

	// Event loop
	events  chan func()
	running atomic.Bool
	started atomic.Bool
	done    chan struct{}

	// Orientation debounce
	orientMu       sync.Mutex
	orientTimer    *time.Timer
	orientDebounce time.Duration

	// active mirrors tracker.Active for readers off the loop.
	active atomic.Bool
}

// New creates an application. When the display overlay is missing, New
// logs the problem once and returns a disabled application together with an
// error wrapping ErrMountMissing; a disabled application ignores all input.
func New(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &Application{
		logger:          logger,
		display:         opts.Display,
		inputMetrics:    input.NewMetrics(),
		dispatchMetrics: dispatcher.NewMetrics(),
		loopMetrics:     NewLoopMetrics(),
		events:          make(chan func(), 256),
		done:            make(chan struct{}),
		orientDebounce:  opts.OrientationDebounce,
	}
	if app.orientDebounce == 0 {
		app.orientDebounce = DefaultOrientationDebounce
	}

	if opts.Display == nil {
		app.disabled = true
		err := &InitError{Component: "overlay", Err: ErrMountMissing}
		logger.Error("gesture module disabled", zap.Error(err))
		return app, err
	}

	if err := app.bootstrap(opts); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	cal := opts.Calibration
	if cal == (profile.Calibration{}) {
		cal = profile.DefaultCalibration()
	}
	store, err := profile.NewStore(cal)
	if err != nil {
		return &InitError{Component: "profile", Err: err}
	}
	store.Recalibrate(opts.Orientation)
	app.profiles = store

	app.forwarder = forward.New(opts.Surface, opts.Channel, app.logger.Named("forward"))

	dcfg := opts.Dispatch
	if dcfg.QueueSize <= 0 {
		dcfg.QueueSize = dispatcher.DefaultConfig().QueueSize
	}
	app.queue = dispatcher.NewQueue(dcfg.QueueSize,
		dispatcher.WithQueueLogger(app.logger.Named("queue")))
	app.dispatcher = dispatcher.New(dcfg,
		dispatcher.Targets{
			Navigator: opts.Navigator,
			Forwarder: app.forwarder,
			Feedback:  opts.Feedback,
		},
		app.queue,
		dispatcher.WithLogger(app.logger.Named("dispatcher")),
		dispatcher.WithMetrics(app.dispatchMetrics))

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = touch.AfterFuncScheduler{Fire: app.longPressFired}
	}
	app.tracker = touch.NewTracker(store, scheduler,
		touch.WithLogger(app.logger.Named("touch")),
		touch.WithMetrics(app.inputMetrics))

	return nil
}

// Run runs the event loop until ctx is done. Pending dispatched actions are
// drained before Run returns.
func (app *Application) Run(ctx context.Context) error {
	if app.disabled {
		return &InitError{Component: "overlay", Err: ErrMountMissing}
	}
	if !app.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if err := app.queue.Start(); err != nil {
		return NewComponentError("queue", "start", err)
	}
	app.running.Store(true)
	app.logger.Info("gesture loop started",
		zap.Stringer("orientation", app.profiles.Orientation()))

	app.loop(ctx)
	return app.shutdown()
}

// shutdown runs after the loop has exited.
func (app *Application) shutdown() error {
	app.running.Store(false)
	close(app.done)

	app.orientMu.Lock()
	if app.orientTimer != nil {
		app.orientTimer.Stop()
	}
	app.orientMu.Unlock()

	// The loop is gone, so the tracker is ours to touch here.
	app.tracker.Reset()
	app.active.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	if qerr := app.queue.Stop(ctx); qerr != nil {
		err = multierr.Append(err, NewComponentError("queue", "stop", qerr))
	}
	if serr := app.logger.Sync(); serr != nil && !isIgnorableSyncError(serr) {
		err = multierr.Append(err, serr)
	}

	app.logger.Info("gesture loop stopped")
	return err
}

// Running reports whether the event loop is running.
func (app *Application) Running() bool {
	return app.running.Load()
}

// Disabled reports whether the application was created without an overlay.
func (app *Application) Disabled() bool {
	return app.disabled
}

// Profile returns the threshold profile in effect.
func (app *Application) Profile() profile.Profile {
	if app.profiles == nil {
		return profile.Default()
	}
	return app.profiles.Current()
}

// Orientation returns the orientation the profile was calibrated for.
func (app *Application) Orientation() profile.Orientation {
	if app.profiles == nil {
		return profile.Portrait
	}
	return app.profiles.Orientation()
}

// Active reports whether a touch trajectory is in progress.
func (app *Application) Active() bool {
	return app.active.Load()
}

// InputMetrics returns gesture recognition metrics.
func (app *Application) InputMetrics() *input.Metrics {
	return app.inputMetrics
}

// DispatchMetrics returns per-binding dispatch metrics.
func (app *Application) DispatchMetrics() *dispatcher.Metrics {
	return app.dispatchMetrics
}

// LoopMetrics returns event loop metrics.
func (app *Application) LoopMetrics() *LoopMetrics {
	return app.loopMetrics
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}
