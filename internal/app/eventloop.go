package app

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
	"github.com/dshills/swipeshell/internal/input/touch"
)

// loop executes posted closures one at a time until ctx is done.
func (app *Application) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-app.events:
			app.runEvent(fn)
		}
	}
}

func (app *Application) runEvent(fn func()) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			app.loopMetrics.RecordPanic()
			err := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("event loop panic", zap.Error(err), zap.String("stack", err.Stack))
		}
		app.loopMetrics.RecordEvent(time.Since(start))
	}()
	fn()
}

// post schedules fn on the event loop. It reports false if the loop is not
// running; fn is then discarded.
func (app *Application) post(fn func()) bool {
	if !app.running.Load() {
		app.loopMetrics.RecordDropped()
		return false
	}
	select {
	case app.events <- fn:
		return true
	case <-app.done:
		app.loopMetrics.RecordDropped()
		return false
	}
}

// call runs fn on the event loop and waits for it to finish.
func (app *Application) call(fn func()) bool {
	finished := make(chan struct{})
	if !app.post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-app.done:
		return false
	}
}

// HandleTouch feeds a host touch event through the tracker. Only the first
// contact is used. The result reports whether the host should suppress its
// default scrolling and zooming, which is the case for every event that
// belongs to an active trajectory.
func (app *Application) HandleTouch(ev input.TouchEvent) bool {
	if app.disabled {
		return false
	}
	var prevent bool
	if !app.call(func() { prevent = app.handleTouch(ev) }) {
		return false
	}
	return prevent
}

// handleTouch runs on the event loop.
func (app *Application) handleTouch(ev input.TouchEvent) bool {
	start := time.Now()
	wasActive := app.tracker.Active()

	at := ev.Time
	if at.IsZero() {
		at = start
	}

	var effects []touch.Effect
	c, ok := ev.First()
	switch ev.Type {
	case input.TouchStart:
		if ok {
			effects = app.tracker.TouchStart(c.ID, c.Point, at)
		}
	case input.TouchMove:
		if ok {
			effects = app.tracker.TouchMove(c.ID, c.Point, at)
		}
	case input.TouchEnd:
		if ok {
			effects = app.tracker.TouchEnd(c.ID, c.Point, at)
		}
	case input.TouchCancel:
		effects = app.tracker.TouchCancel()
	}
	if !ok && ev.Type != input.TouchCancel {
		app.inputMetrics.RecordIgnored()
	}

	app.apply(effects)
	app.active.Store(app.tracker.Active())
	app.inputMetrics.RecordTouchEvent(time.Since(start))

	return wasActive || app.tracker.Active()
}

// longPressFired runs on a timer goroutine.
func (app *Application) longPressFired(to touch.Timeout) {
	app.post(func() {
		app.apply(app.tracker.LongPressElapsed(to))
	})
}

// apply is the effect shell: indicator effects go to the display and
// classifications to the dispatcher.
func (app *Application) apply(effects []touch.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case touch.EffectShowIndicator:
			app.display.ShowIndicator(e.Indicator)
		case touch.EffectHideHorizontal:
			app.display.HideHorizontal()
		case touch.EffectHideIndicators:
			app.display.HideIndicators()
		case touch.EffectClassified:
			app.dispatcher.Dispatch(e.Classification)
		default:
			app.inputMetrics.RecordDroppedEffect()
		}
	}
}

// OrientationChanged schedules a profile recalibration for o once the
// orientation has been stable for the debounce interval. Repeated changes
// within the interval restart it; only the last orientation is applied.
func (app *Application) OrientationChanged(o profile.Orientation) {
	if app.disabled {
		return
	}

	app.orientMu.Lock()
	defer app.orientMu.Unlock()

	if app.orientTimer != nil {
		app.orientTimer.Stop()
	}
	delay := app.orientDebounce
	if delay < 0 {
		delay = 0
	}
	app.orientTimer = time.AfterFunc(delay, func() {
		app.post(func() { app.recalibrate(o) })
	})
}

func (app *Application) recalibrate(o profile.Orientation) {
	p := app.profiles.Recalibrate(o)
	app.logger.Info("profile recalibrated",
		zap.Stringer("orientation", o),
		zap.Float64("swipe_distance", p.SwipeDistanceMin))
}

// ReloadCalibration validates c and installs it on the event loop, keeping
// the current orientation. When the loop is not running the store is
// updated directly.
func (app *Application) ReloadCalibration(c profile.Calibration) error {
	if app.disabled {
		return &InitError{Component: "overlay", Err: ErrMountMissing}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	update := func() {
		if _, err := app.profiles.Update(c); err != nil {
			app.logger.Warn("calibration rejected", zap.Error(err))
			return
		}
		app.logger.Info("calibration reloaded")
	}
	if !app.post(update) {
		update()
	}
	return nil
}
