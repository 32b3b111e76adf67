package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
)

func TestCellsPoint(t *testing.T) {
	c := Cells{Width: 8, Height: 16}

	if got, want := c.Point(0, 0), input.Pt(4, 8); got != want {
		t.Errorf("Point(0,0) = %v, want %v", got, want)
	}
	if got, want := c.Point(10, 2), input.Pt(84, 40); got != want {
		t.Errorf("Point(10,2) = %v, want %v", got, want)
	}

	x, y := c.Cell(input.Pt(84, 40))
	if x != 10 || y != 2 {
		t.Errorf("Cell = (%d, %d), want (10, 2)", x, y)
	}
}

func TestCellsZeroUsesDefaults(t *testing.T) {
	var c Cells
	if got, want := c.Point(1, 1), DefaultCells().Point(1, 1); got != want {
		t.Errorf("zero Cells Point = %v, want %v", got, want)
	}
}

func TestCellsRect(t *testing.T) {
	c := Cells{Width: 8, Height: 16}
	got := c.Rect(2, 1, 10, 5)
	want := input.Rect{Min: input.Pt(16, 16), Width: 80, Height: 80}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rect mismatch (-want +got):\n%s", diff)
	}
}

func TestCellsOrientation(t *testing.T) {
	c := Cells{Width: 8, Height: 16}
	tests := []struct {
		w, h int
		want profile.Orientation
	}{
		{80, 24, profile.Landscape}, // 640x384
		{40, 40, profile.Portrait},  // 320x640
		{20, 10, profile.Portrait},  // 160x160
	}
	for _, tt := range tests {
		if got := c.Orientation(tt.w, tt.h); got != tt.want {
			t.Errorf("Orientation(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestConvertMouseSequence(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""), Cells{Width: 10, Height: 10})

	steps := []struct {
		x, y    int
		buttons tcell.ButtonMask
		want    input.TouchType
	}{
		{1, 1, tcell.Button1, input.TouchStart},
		{1, 1, tcell.Button1, input.TouchNone}, // same cell
		{4, 1, tcell.Button1, input.TouchMove},
		{6, 1, tcell.Button1, input.TouchMove},
		{6, 1, tcell.ButtonNone, input.TouchEnd},
		{7, 1, tcell.ButtonNone, input.TouchNone}, // hover
	}

	for i, s := range steps {
		ev := term.convertEvent(tcell.NewEventMouse(s.x, s.y, s.buttons, tcell.ModNone))
		if s.want == input.TouchNone {
			if ev.Type != EventNone {
				t.Errorf("step %d: got %v, want none", i, ev.Type)
			}
			continue
		}
		if ev.Type != EventTouch {
			t.Fatalf("step %d: got %v, want touch", i, ev.Type)
		}
		if ev.Touch.Type != s.want {
			t.Errorf("step %d: touch type = %v, want %v", i, ev.Touch.Type, s.want)
		}
		c, ok := ev.Touch.First()
		if !ok {
			t.Fatalf("step %d: no contact", i)
		}
		if want := input.Pt(float64(s.x)*10+5, float64(s.y)*10+5); c.Point != want {
			t.Errorf("step %d: point = %v, want %v", i, c.Point, want)
		}
		if c.ID != MousePointer {
			t.Errorf("step %d: pointer = %d, want %d", i, c.ID, MousePointer)
		}
	}
}

func TestConvertFocusLossCancels(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""), DefaultCells())

	ev := term.convertEvent(tcell.NewEventFocus(false))
	if ev.Type != EventFocus || ev.Focused {
		t.Errorf("focus loss while idle = %+v, want focus event", ev)
	}

	term.convertEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	ev = term.convertEvent(tcell.NewEventFocus(false))
	if ev.Type != EventTouch || ev.Touch.Type != input.TouchCancel {
		t.Fatalf("focus loss while pressed = %+v, want touch cancel", ev)
	}

	// The release after a cancel is not a touch end.
	ev = term.convertEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if ev.Type != EventNone {
		t.Errorf("release after cancel = %v, want none", ev.Type)
	}
}

func TestConvertKeys(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""), DefaultCells())

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Event{Type: EventQuit}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Event{Type: EventQuit}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone), Event{Type: EventKey, Rune: 'o'}},
		{"other", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Event{Type: EventNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := term.convertEvent(tt.ev)
			if got.Type != tt.want.Type || got.Rune != tt.want.Rune {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConvertResize(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""), Cells{Width: 8, Height: 16})

	ev := term.convertEvent(tcell.NewEventResize(30, 40))
	if ev.Type != EventResize {
		t.Fatalf("got %v, want resize", ev.Type)
	}
	if ev.Width != 30 || ev.Height != 40 {
		t.Errorf("size = %dx%d, want 30x40", ev.Width, ev.Height)
	}
	if ev.Orientation != profile.Portrait {
		t.Errorf("orientation = %v, want portrait", ev.Orientation)
	}
}

func nextTouch(t *testing.T, term *Terminal) Event {
	t.Helper()
	for i := 0; i < 10; i++ {
		ev := term.PollEvent()
		if ev.Type == EventTouch {
			return ev
		}
	}
	t.Fatal("no touch event")
	return Event{}
}

func TestTerminalSimulationDrag(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(screen, Cells{Width: 8, Height: 16})
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(80, 24)

	before := time.Now()
	screen.InjectMouse(2, 3, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(12, 3, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(12, 3, tcell.ButtonNone, tcell.ModNone)

	want := []input.TouchType{input.TouchStart, input.TouchMove, input.TouchEnd}
	for i, typ := range want {
		ev := nextTouch(t, term)
		if ev.Touch.Type != typ {
			t.Errorf("event %d = %v, want %v", i, ev.Touch.Type, typ)
		}
		if ev.Touch.Time.Before(before) {
			t.Errorf("event %d time %v precedes injection", i, ev.Touch.Time)
		}
	}

	w, h := term.Size()
	if w != 80 || h != 24 {
		t.Errorf("size = %dx%d, want 80x24", w, h)
	}
}

func TestTerminalWake(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(screen, DefaultCells())
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	term.Wake()
	for i := 0; i < 10; i++ {
		if term.PollEvent().Type == EventRedraw {
			return
		}
	}
	t.Error("Wake did not produce a redraw event")
}

func TestEventTypeString(t *testing.T) {
	if EventTouch.String() != "touch" || EventQuit.String() != "quit" || EventType(99).String() != "none" {
		t.Error("unexpected event type names")
	}
}
