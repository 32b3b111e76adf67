// Package backend turns a terminal into a touch input source.
//
// The terminal has no touch hardware, so the primary mouse button stands in
// for a single finger: press, drag and release become touch start, move and
// end. Cell coordinates are scaled to logical pixels so the gesture
// thresholds keep their meaning.
package backend

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventTouch
	EventResize
	EventFocus
	EventKey
	EventRedraw
	EventQuit
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventTouch:
		return "touch"
	case EventResize:
		return "resize"
	case EventFocus:
		return "focus"
	case EventKey:
		return "key"
	case EventRedraw:
		return "redraw"
	case EventQuit:
		return "quit"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Touch is set for EventTouch.
	Touch input.TouchEvent

	// Resize event fields, in cells.
	Width, Height int
	Orientation   profile.Orientation

	// Focus event field
	Focused bool

	// Key event field
	Rune rune
}

// Backend is a source of terminal events that can also be drawn on.
type Backend interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	PollEvent() Event
	Wake()

	Clear()
	Show()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Default cell size in logical pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Cells maps terminal cells to logical pixels.
type Cells struct {
	Width, Height float64
}

// DefaultCells returns the default cell geometry.
func DefaultCells() Cells {
	return Cells{Width: DefaultCellWidth, Height: DefaultCellHeight}
}

func (c Cells) normalized() Cells {
	if c.Width <= 0 {
		c.Width = DefaultCellWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultCellHeight
	}
	return c
}

// Point returns the pixel at the center of cell (x, y).
func (c Cells) Point(x, y int) input.Point {
	c = c.normalized()
	return input.Pt((float64(x)+0.5)*c.Width, (float64(y)+0.5)*c.Height)
}

// Cell returns the cell containing pixel p.
func (c Cells) Cell(p input.Point) (x, y int) {
	c = c.normalized()
	return int(math.Floor(p.X / c.Width)), int(math.Floor(p.Y / c.Height))
}

// Rect returns the pixel rectangle covering w x h cells starting at (x, y).
func (c Cells) Rect(x, y, w, h int) input.Rect {
	c = c.normalized()
	return input.Rect{
		Min:    input.Pt(float64(x)*c.Width, float64(y)*c.Height),
		Width:  float64(w) * c.Width,
		Height: float64(h) * c.Height,
	}
}

// Orientation returns the orientation of a w x h cell screen.
func (c Cells) Orientation(w, h int) profile.Orientation {
	c = c.normalized()
	return profile.OrientationFromSize(int(float64(w)*c.Width), int(float64(h)*c.Height))
}
