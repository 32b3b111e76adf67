package touch

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
)

// Classification is the single discrete outcome of a touch sequence.
type Classification struct {
	// Kind is the gesture kind.
	Kind input.Gesture

	// Point is where a tap or long press happened.
	Point input.Point

	// Direction, Distance and Velocity describe a swipe.
	Direction input.Direction
	Distance  float64
	Velocity  float64

	// Sequence identifies the touch sequence that produced this value.
	Sequence uuid.UUID
}

// Tap returns a tap classification.
func Tap(p input.Point) Classification {
	return Classification{Kind: input.GestureTap, Point: p}
}

// LongPress returns a long-press classification.
func LongPress(p input.Point) Classification {
	return Classification{Kind: input.GestureLongPress, Point: p}
}

// Swipe returns a swipe classification.
func Swipe(dir input.Direction, distance, velocity float64) Classification {
	return Classification{
		Kind:      input.GestureSwipe,
		Direction: dir,
		Distance:  distance,
		Velocity:  velocity,
	}
}

// None returns the empty classification.
func None() Classification {
	return Classification{Kind: input.GestureNone}
}

// String returns a short human readable form.
func (c Classification) String() string {
	switch c.Kind {
	case input.GestureTap, input.GestureLongPress:
		return fmt.Sprintf("%s(%.0f,%.0f)", c.Kind, c.Point.X, c.Point.Y)
	case input.GestureSwipe:
		return fmt.Sprintf("swipe(%s, %.1fpx, %.2fpx/ms)", c.Direction, c.Distance, c.Velocity)
	default:
		return "none"
	}
}

// Label is the feedback label shown for the classification.
func (c Classification) Label() string {
	switch c.Kind {
	case input.GestureTap:
		return "Tap"
	case input.GestureLongPress:
		return "Long Press"
	case input.GestureSwipe:
		return "Swipe " + strings.ToUpper(c.Direction.String())
	default:
		return ""
	}
}

// Trajectory is the motion record of one active touch.
type Trajectory struct {
	Sequence uuid.UUID
	Pointer  input.PointerID

	Start   input.Point
	Current input.Point

	StartTime time.Time
	EndTime   time.Time

	Direction input.Direction

	// classified is set once a long press fired for this touch.
	classified bool

	// longPress is the live timer handle, nil when no timer is armed.
	longPress CancelFunc

	// indicator is the horizontal indicator currently requested.
	indicator Indicator
}

// Delta returns Current - Start.
func (t Trajectory) Delta() input.Point {
	return t.Current.Sub(t.Start)
}

// Distance returns the straight-line distance travelled.
func (t Trajectory) Distance() float64 {
	return t.Delta().Len()
}

// Duration returns the time between start and end. It is zero until the
// trajectory is finalized.
func (t Trajectory) Duration() time.Duration {
	if t.EndTime.IsZero() || t.EndTime.Before(t.StartTime) {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}

// Velocity returns the average speed in px/ms. A zero-length trajectory has
// zero velocity; movement within a zero duration is infinitely fast.
func (t Trajectory) Velocity() float64 {
	dist := t.Distance()
	ms := float64(t.Duration()) / float64(time.Millisecond)
	if ms <= 0 {
		if dist == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return dist / ms
}

// Classified reports whether a long press already classified this touch.
func (t Trajectory) Classified() bool {
	return t.classified
}

// TimerArmed reports whether the long-press timer is still live.
func (t Trajectory) TimerArmed() bool {
	return t.longPress != nil
}

// Classify decides tap, swipe or none for a finalized trajectory against one
// profile snapshot. It never returns LongPress.
func Classify(t Trajectory, p profile.Profile) Classification {
	dist := t.Distance()

	var c Classification
	switch {
	case dist < p.TapDistanceMax:
		c = Tap(t.Start)
	default:
		v := t.Velocity()
		if dist > p.SwipeDistanceMin && v > p.VelocityMin {
			c = Swipe(t.Direction, dist, v)
		} else {
			c = None()
		}
	}

	c.Sequence = t.Sequence
	return c
}
