package input

import (
	"math"
	"time"
)

// Direction represents the dominant axis and sign of a motion.
type Direction uint8

const (
	// DirNone indicates no direction.
	DirNone Direction = iota
	// DirLeft indicates leftward motion (negative X).
	DirLeft
	// DirRight indicates rightward motion (positive X).
	DirRight
	// DirUp indicates upward motion (negative Y).
	DirUp
	// DirDown indicates downward motion (positive Y).
	DirDown
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// IsHorizontal returns true for left and right.
func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

// DirectionOf returns the direction of a delta vector. The horizontal axis
// wins only when |dx| is strictly greater than |dy|, so exact ties resolve
// vertically. A zero vector has no direction.
func DirectionOf(delta Point) Direction {
	if delta.X == 0 && delta.Y == 0 {
		return DirNone
	}
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		if delta.X < 0 {
			return DirLeft
		}
		return DirRight
	}
	if delta.Y < 0 {
		return DirUp
	}
	return DirDown
}

// Point is a 2D coordinate in logical pixels.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
// Gesture thresholds are radial, unlike the Manhattan metric used for
// terminal click proximity.
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Len()
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	// Min is the top-left corner (the origin).
	Min Point
	// Width and Height are the extents.
	Width, Height float64
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Min.X+r.Width &&
		p.Y >= r.Min.Y && p.Y < r.Min.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// PointerID identifies one contact within a touch sequence.
type PointerID int

// TouchType is the kind of a host touch event.
type TouchType uint8

const (
	// TouchNone indicates no event.
	TouchNone TouchType = iota
	// TouchStart is a finger going down.
	TouchStart
	// TouchMove is a finger moving while down.
	TouchMove
	// TouchEnd is a finger lifting.
	TouchEnd
	// TouchCancel is the platform aborting the sequence.
	TouchCancel
)

// String returns a string representation of the touch type.
func (t TouchType) String() string {
	switch t {
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	case TouchCancel:
		return "touchcancel"
	default:
		return "none"
	}
}

// Contact is a single point of a multi-point touch event.
type Contact struct {
	ID    PointerID
	Point Point
}

// TouchEvent is a raw event from the host touch-input system.
// Only the first contact is used; cancel events may carry none.
type TouchEvent struct {
	Type     TouchType
	Contacts []Contact
	Time     time.Time
}

// First returns the first contact of the event.
func (e TouchEvent) First() (Contact, bool) {
	if len(e.Contacts) == 0 {
		return Contact{}, false
	}
	return e.Contacts[0], true
}

// Gesture is the kind of a gesture classification.
type Gesture uint8

const (
	// GestureNone is a completed touch that qualified as nothing.
	GestureNone Gesture = iota
	// GestureTap is a short, nearly stationary touch.
	GestureTap
	// GestureLongPress is a stationary touch held past the long-press duration.
	GestureLongPress
	// GestureSwipe is a fast, long directional motion.
	GestureSwipe
)

// String returns a string representation of the gesture kind.
func (g Gesture) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureLongPress:
		return "long-press"
	case GestureSwipe:
		return "swipe"
	default:
		return "none"
	}
}
