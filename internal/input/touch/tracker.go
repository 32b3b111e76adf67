package touch

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
)

// ProfileSource provides the threshold snapshot in effect.
type ProfileSource interface {
	Current() profile.Profile
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMetrics records classifications and ignored events.
func WithMetrics(m *input.Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithSequenceFunc overrides how trajectory sequence ids are generated.
func WithSequenceFunc(fn func() uuid.UUID) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.newSequence = fn
		}
	}
}

// Tracker owns the single active trajectory and drives its transitions.
type Tracker struct {
	profiles  ProfileSource
	scheduler Scheduler

	metrics     *input.Metrics
	logger      *zap.Logger
	newSequence func() uuid.UUID

	active *Trajectory
}

// NewTracker creates a tracker reading thresholds from profiles and arming
// long-press timers through scheduler.
func NewTracker(profiles ProfileSource, scheduler Scheduler, opts ...Option) *Tracker {
	t := &Tracker{
		profiles:    profiles,
		scheduler:   scheduler,
		logger:      zap.NewNop(),
		newSequence: uuid.New,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active reports whether a trajectory is in progress.
func (t *Tracker) Active() bool {
	return t.active != nil
}

// Trajectory returns a copy of the active trajectory.
func (t *Tracker) Trajectory() (Trajectory, bool) {
	if t.active == nil {
		return Trajectory{}, false
	}
	return *t.active, true
}

// TouchStart begins a trajectory. It is ignored while another trajectory is
// active.
func (t *Tracker) TouchStart(pointer input.PointerID, p input.Point, at time.Time) []Effect {
	if t.active != nil {
		t.ignored("touch start while active", pointer)
		return nil
	}

	prof := t.profiles.Current()
	traj := &Trajectory{
		Sequence:  t.newSequence(),
		Pointer:   pointer,
		Start:     p,
		Current:   p,
		StartTime: at,
		Direction: input.DirNone,
	}
	t.active = traj

	if t.scheduler != nil {
		traj.longPress = t.scheduler.Schedule(prof.LongPressDuration, Timeout{Sequence: traj.Sequence})
	}

	t.logger.Debug("touch start",
		zap.Stringer("sequence", traj.Sequence),
		zap.Int("pointer", int(pointer)),
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y))

	return []Effect{ShowIndicator(IndicatorActive)}
}

// TouchMove updates the active trajectory.
func (t *Tracker) TouchMove(pointer input.PointerID, p input.Point, _ time.Time) []Effect {
	traj := t.active
	if traj == nil || traj.Pointer != pointer {
		t.ignored("touch move without trajectory", pointer)
		return nil
	}

	prof := t.profiles.Current()

	traj.Current = p
	delta := traj.Delta()
	traj.Direction = input.DirectionOf(delta)

	if traj.longPress != nil && delta.Len() > prof.TapDistanceMax {
		t.cancelLongPress(traj)
	}

	want := IndicatorNone
	if math.Abs(delta.X) > prof.IndicatorDistance() {
		if delta.X < 0 {
			want = IndicatorLeft
		} else {
			want = IndicatorRight
		}
	}
	if want == traj.indicator {
		return nil
	}
	traj.indicator = want
	if want == IndicatorNone {
		return []Effect{HideHorizontal()}
	}
	return []Effect{ShowIndicator(want)}
}

// TouchEnd finalizes the trajectory and classifies it unless a long press
// already did.
func (t *Tracker) TouchEnd(pointer input.PointerID, p input.Point, at time.Time) []Effect {
	traj := t.active
	if traj == nil || traj.Pointer != pointer {
		t.ignored("touch end without trajectory", pointer)
		return nil
	}

	traj.Current = p
	traj.EndTime = at
	traj.Direction = input.DirectionOf(traj.Delta())

	t.cancelLongPress(traj)
	t.active = nil

	effects := []Effect{HideIndicators()}
	if traj.classified {
		t.logger.Debug("touch end after long press", zap.Stringer("sequence", traj.Sequence))
		return effects
	}

	c := Classify(*traj, t.profiles.Current())
	t.record(c)
	return append(effects, Classified(c))
}

// TouchCancel drops the active trajectory without classifying it. Calling it
// with no active trajectory is a no-op.
func (t *Tracker) TouchCancel() []Effect {
	traj := t.active
	if traj == nil {
		return nil
	}

	t.cancelLongPress(traj)
	t.active = nil

	if t.metrics != nil {
		t.metrics.RecordCancel()
	}
	t.logger.Debug("touch cancel", zap.Stringer("sequence", traj.Sequence))

	return []Effect{HideIndicators()}
}

// LongPressElapsed handles a fired long-press timer. Timeouts for a
// trajectory that is gone, already classified, disarmed, or has moved past
// the tap distance are discarded.
func (t *Tracker) LongPressElapsed(to Timeout) []Effect {
	traj := t.active
	if traj == nil || traj.Sequence != to.Sequence || traj.longPress == nil || traj.classified {
		if t.metrics != nil {
			t.metrics.RecordStaleTimer()
		}
		t.logger.Debug("stale long press timer", zap.Stringer("sequence", to.Sequence))
		return nil
	}
	if traj.Distance() > t.profiles.Current().TapDistanceMax {
		t.cancelLongPress(traj)
		if t.metrics != nil {
			t.metrics.RecordStaleTimer()
		}
		return nil
	}

	traj.longPress = nil
	traj.classified = true

	c := LongPress(traj.Current)
	c.Sequence = traj.Sequence
	t.record(c)
	return []Effect{Classified(c)}
}

// Reset cancels any pending timer and forgets the active trajectory.
func (t *Tracker) Reset() {
	if t.active != nil {
		t.cancelLongPress(t.active)
		t.active = nil
	}
}

func (t *Tracker) cancelLongPress(traj *Trajectory) {
	if traj.longPress == nil {
		return
	}
	cancel := traj.longPress
	traj.longPress = nil
	cancel()
}

func (t *Tracker) record(c Classification) {
	if t.metrics != nil {
		t.metrics.RecordGesture(c.Kind)
	}
	t.logger.Debug("classified",
		zap.Stringer("sequence", c.Sequence),
		zap.Stringer("gesture", c))
}

func (t *Tracker) ignored(reason string, pointer input.PointerID) {
	if t.metrics != nil {
		t.metrics.RecordIgnored()
	}
	t.logger.Debug(reason, zap.Int("pointer", int(pointer)))
}
