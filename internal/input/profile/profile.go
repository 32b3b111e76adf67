// Package profile holds the tunable thresholds that drive gesture
// classification and recalibrates them when the device orientation changes.
package profile

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Default threshold values in logical pixels and milliseconds.
const (
	DefaultSwipeDistance          = 50.0
	DefaultLandscapeSwipeDistance = 80.0
	DefaultVelocityMin            = 0.3
	DefaultTapDistanceMax         = 10.0
	DefaultLongPressDuration      = 500 * time.Millisecond
)

// Errors returned by calibration validation.
var (
	// ErrNonPositive indicates a threshold that must be positive is not.
	ErrNonPositive = errors.New("threshold must be positive")

	// ErrTapOverlapsSwipe indicates a tap could also qualify as a swipe.
	ErrTapOverlapsSwipe = errors.New("tap distance must be smaller than swipe distance")
)

// Orientation is the device orientation.
type Orientation uint8

const (
	// Portrait is taller than wide.
	Portrait Orientation = iota
	// Landscape is wider than tall.
	Landscape
)

// String returns a string representation of the orientation.
func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation parses "portrait" or "landscape".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "portrait", "":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	default:
		return Portrait, fmt.Errorf("unknown orientation %q", s)
	}
}

// OrientationFromSize returns Landscape when the viewport is wider than tall.
func OrientationFromSize(width, height int) Orientation {
	if width > height {
		return Landscape
	}
	return Portrait
}

// Calibration holds every tunable constant, including both
// orientation-dependent swipe distances.
type Calibration struct {
	// SwipeDistance is the minimum swipe distance in portrait.
	SwipeDistance float64

	// LandscapeSwipeDistance is the minimum swipe distance in landscape.
	LandscapeSwipeDistance float64

	// VelocityMin is the minimum swipe velocity in px/ms.
	VelocityMin float64

	// TapDistanceMax is the largest motion that still counts as a tap.
	TapDistanceMax float64

	// LongPressDuration is how long a stationary touch must be held.
	LongPressDuration time.Duration
}

// DefaultCalibration returns the stock thresholds.
func DefaultCalibration() Calibration {
	return Calibration{
		SwipeDistance:          DefaultSwipeDistance,
		LandscapeSwipeDistance: DefaultLandscapeSwipeDistance,
		VelocityMin:            DefaultVelocityMin,
		TapDistanceMax:         DefaultTapDistanceMax,
		LongPressDuration:      DefaultLongPressDuration,
	}
}

// Validate checks that all thresholds are positive and that a tap can never
// also qualify as a swipe in either orientation.
func (c Calibration) Validate() error {
	switch {
	case c.SwipeDistance <= 0:
		return fmt.Errorf("swipe distance %v: %w", c.SwipeDistance, ErrNonPositive)
	case c.LandscapeSwipeDistance <= 0:
		return fmt.Errorf("landscape swipe distance %v: %w", c.LandscapeSwipeDistance, ErrNonPositive)
	case c.VelocityMin <= 0:
		return fmt.Errorf("velocity %v: %w", c.VelocityMin, ErrNonPositive)
	case c.TapDistanceMax <= 0:
		return fmt.Errorf("tap distance %v: %w", c.TapDistanceMax, ErrNonPositive)
	case c.LongPressDuration <= 0:
		return fmt.Errorf("long press duration %v: %w", c.LongPressDuration, ErrNonPositive)
	}
	if c.TapDistanceMax >= c.SwipeDistance || c.TapDistanceMax >= c.LandscapeSwipeDistance {
		return fmt.Errorf("tap %v, swipe %v/%v: %w",
			c.TapDistanceMax, c.SwipeDistance, c.LandscapeSwipeDistance, ErrTapOverlapsSwipe)
	}
	return nil
}

// Resolve returns the profile for an orientation.
func (c Calibration) Resolve(o Orientation) Profile {
	swipe := c.SwipeDistance
	if o == Landscape {
		swipe = c.LandscapeSwipeDistance
	}
	return Profile{
		SwipeDistanceMin:  swipe,
		VelocityMin:       c.VelocityMin,
		TapDistanceMax:    c.TapDistanceMax,
		LongPressDuration: c.LongPressDuration,
	}
}

// Profile is an immutable snapshot of the thresholds in effect.
// Classification always runs against a single snapshot.
type Profile struct {
	SwipeDistanceMin  float64
	VelocityMin       float64
	TapDistanceMax    float64
	LongPressDuration time.Duration
}

// Default returns the portrait profile of the default calibration.
func Default() Profile {
	return DefaultCalibration().Resolve(Portrait)
}

// IndicatorDistance is the horizontal travel after which the directional
// indicator is shown.
func (p Profile) IndicatorDistance() float64 {
	return p.SwipeDistanceMin / 2
}

// Store is the process-wide mutable profile. Recalibration only replaces the
// orientation-dependent values; it never resets the rest.
type Store struct {
	mu          sync.RWMutex
	calibration Calibration
	orientation Orientation
	current     Profile
}

// NewStore creates a store in portrait orientation.
func NewStore(c Calibration) (*Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		calibration: c,
		orientation: Portrait,
		current:     c.Resolve(Portrait),
	}, nil
}

// Current returns the profile snapshot in effect.
func (s *Store) Current() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Orientation returns the orientation the profile is calibrated for.
func (s *Store) Orientation() Orientation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orientation
}

// Calibration returns the underlying calibration.
func (s *Store) Calibration() Calibration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calibration
}

// Recalibrate switches the swipe distance to the given orientation and
// returns the new snapshot.
func (s *Store) Recalibrate(o Orientation) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orientation = o
	s.current = s.calibration.Resolve(o)
	return s.current
}

// Update replaces the calibration, keeping the current orientation. An
// invalid calibration is rejected and the previous one stays in effect.
func (s *Store) Update(c Calibration) (Profile, error) {
	if err := c.Validate(); err != nil {
		return s.Current(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calibration = c
	s.current = c.Resolve(s.orientation)
	return s.current, nil
}
