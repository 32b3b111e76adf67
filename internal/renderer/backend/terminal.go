package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/swipeshell/internal/input"
)

// MousePointer is the pointer id given to the emulated finger.
const MousePointer input.PointerID = 1

var _ Backend = (*Terminal)(nil)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	cells  Cells
	mu     sync.Mutex

	// Emulated finger state, touched only by PollEvent.
	pressed bool
	last    input.Point
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal(cells Cells) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, cells), nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen.
func NewTerminalWithScreen(screen tcell.Screen, cells Cells) *Terminal {
	return &Terminal{screen: screen, cells: cells.normalized()}
}

// Cells returns the cell geometry in use.
func (t *Terminal) Cells() Cells {
	return t.cells
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Drag reports are what turn into touch moves.
	t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	t.screen.EnableFocus()
	t.screen.HideCursor()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, primary, combining, style)
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Wake makes a blocked PollEvent return EventRedraw.
func (t *Terminal) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// PollEvent blocks for the next event. Events that carry nothing of interest
// come back as EventNone. EventQuit is also returned once the screen has
// been shut down.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventQuit}
	}
	return t.convertEvent(ev)
}

func (t *Terminal) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Event{Type: EventQuit}
		case tcell.KeyRune:
			return Event{Type: EventKey, Rune: e.Rune()}
		default:
			return Event{Type: EventNone}
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return t.convertMouse(t.cells.Point(x, y), e.Buttons(), e.When())

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:        EventResize,
			Width:       w,
			Height:      h,
			Orientation: t.cells.Orientation(w, h),
		}

	case *tcell.EventFocus:
		if !e.Focused && t.pressed {
			t.pressed = false
			return Event{
				Type:  EventTouch,
				Touch: input.TouchEvent{Type: input.TouchCancel, Time: e.When()},
			}
		}
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventRedraw}

	default:
		return Event{Type: EventNone}
	}
}

// convertMouse emulates a finger with the primary button. Motion with the
// button up and repeated reports at the same cell are dropped.
func (t *Terminal) convertMouse(p input.Point, buttons tcell.ButtonMask, at time.Time) Event {
	var typ input.TouchType
	switch {
	case buttons&tcell.Button1 != 0 && !t.pressed:
		t.pressed = true
		typ = input.TouchStart
	case buttons&tcell.Button1 != 0:
		if p == t.last {
			return Event{Type: EventNone}
		}
		typ = input.TouchMove
	case t.pressed:
		t.pressed = false
		typ = input.TouchEnd
	default:
		return Event{Type: EventNone}
	}
	t.last = p

	return Event{
		Type: EventTouch,
		Touch: input.TouchEvent{
			Type:     typ,
			Contacts: []input.Contact{{ID: MousePointer, Point: p}},
			Time:     at,
		},
	}
}
