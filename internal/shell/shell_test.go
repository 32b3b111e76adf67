package shell

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/dshills/swipeshell/internal/dispatcher"
	"github.com/dshills/swipeshell/internal/forward"
	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
	"github.com/dshills/swipeshell/internal/input/touch"
	"github.com/dshills/swipeshell/internal/renderer/backend"
)

var testCells = backend.Cells{Width: 10, Height: 20}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestIndicators(t *testing.T) {
	s := New(testCells)

	steps := []struct {
		name string
		do   func()
		want Indicators
	}{
		{"active", func() { s.ShowIndicator(touch.IndicatorActive) }, Indicators{Active: true}},
		{"left", func() { s.ShowIndicator(touch.IndicatorLeft) }, Indicators{Active: true, Left: true}},
		{"right replaces left", func() { s.ShowIndicator(touch.IndicatorRight) }, Indicators{Active: true, Right: true}},
		{"hide horizontal", s.HideHorizontal, Indicators{Active: true}},
		{"hide horizontal again", s.HideHorizontal, Indicators{Active: true}},
		{"hide all", s.HideIndicators, Indicators{}},
		{"hide all again", s.HideIndicators, Indicators{}},
	}
	for _, step := range steps {
		step.do()
		if got := s.State().Indicators; got != step.want {
			t.Errorf("%s: indicators = %+v, want %+v", step.name, got, step.want)
		}
	}
}

func TestPanels(t *testing.T) {
	s := New(testCells)

	s.ShowQuickActions(input.Pt(30, 40))
	st := s.State()
	if !st.QuickActions || st.QuickAt != input.Pt(30, 40) {
		t.Errorf("quick actions = %v at %v, want open at (30,40)", st.QuickActions, st.QuickAt)
	}

	s.ShowPanel(dispatcher.PanelSearch)
	st = s.State()
	if st.Panel != dispatcher.PanelSearch {
		t.Errorf("panel = %q, want search", st.Panel)
	}
	if st.QuickActions {
		t.Error("opening a panel should close quick actions")
	}

	s.ShowPanel(dispatcher.PanelFiles)
	if got := s.State().Panel; got != dispatcher.PanelFiles {
		t.Errorf("panel = %q, want files", got)
	}

	s.ShowQuickActions(input.Pt(1, 1))
	s.HideAllPanels()
	st = s.State()
	if st.Panel != "" || st.QuickActions {
		t.Errorf("after HideAllPanels: panel=%q quick=%v", st.Panel, st.QuickActions)
	}
}

func TestFeedbackExpires(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := New(testCells, WithClock(clock.Now))

	s.ShowFeedback("Tap", 300*time.Millisecond)
	if got := s.State().Feedback; got != "Tap" {
		t.Errorf("feedback = %q, want Tap", got)
	}

	clock.now = clock.now.Add(299 * time.Millisecond)
	if got := s.State().Feedback; got != "Tap" {
		t.Errorf("feedback before expiry = %q, want Tap", got)
	}

	clock.now = clock.now.Add(time.Millisecond)
	if got := s.State().Feedback; got != "" {
		t.Errorf("feedback at expiry = %q, want empty", got)
	}
}

func TestFeedbackReplaced(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := New(testCells, WithClock(clock.Now))

	s.ShowFeedback("Tap", 300*time.Millisecond)
	clock.now = clock.now.Add(200 * time.Millisecond)
	s.ShowFeedback("Swipe LEFT", 400*time.Millisecond)
	clock.now = clock.now.Add(200 * time.Millisecond)

	if got := s.State().Feedback; got != "Swipe LEFT" {
		t.Errorf("feedback = %q, want Swipe LEFT", got)
	}
}

func TestFeedbackTimerWakes(t *testing.T) {
	defer goleak.VerifyNone(t)

	var changes atomic.Int32
	woke := make(chan struct{}, 4)
	s := New(testCells, WithOnChange(func() {
		changes.Add(1)
		select {
		case woke <- struct{}{}:
		default:
		}
	}))
	defer s.Close()

	s.ShowFeedback("Tap", 10*time.Millisecond)
	before := changes.Load()

	deadline := time.After(time.Second)
	for changes.Load() <= before {
		select {
		case <-woke:
		case <-deadline:
			t.Fatal("feedback expiry did not wake the drawing loop")
		}
	}
}

func TestBounds(t *testing.T) {
	s := New(testCells)

	if _, ok := s.Bounds(); ok {
		t.Error("editor should be unmounted before the first resize")
	}

	s.Resize(60, 30, profile.Portrait)
	r, ok := s.Bounds()
	if !ok {
		t.Fatal("editor should be mounted after resize")
	}
	want := input.Rect{Min: input.Pt(0, 20), Width: 600, Height: 560}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}

	s.ShowPanel(dispatcher.PanelTerminal)
	r, _ = s.Bounds()
	if r.Width != float64(60-PanelWidth)*testCells.Width {
		t.Errorf("width with panel = %v", r.Width)
	}
	if r.Min != want.Min {
		t.Errorf("origin moved with panel: %v", r.Min)
	}
}

func TestStateLayout(t *testing.T) {
	s := New(testCells)
	s.Resize(80, 24, profile.Landscape)

	st := s.State()
	if st.Orientation != profile.Landscape {
		t.Errorf("orientation = %v", st.Orientation)
	}
	if st.EditorX != 0 || st.EditorY != HeaderRows || st.EditorWidth != 80 || st.EditorHeight != 24-HeaderRows-FooterRows {
		t.Errorf("editor layout = (%d,%d %dx%d)", st.EditorX, st.EditorY, st.EditorWidth, st.EditorHeight)
	}
}

func TestEditorReceiveClick(t *testing.T) {
	e := NewEditor(testCells, nil)

	data, err := forward.Encode(forward.Message{EventType: "click", Point: input.Pt(35, 45)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := e.Receive(data); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	st := e.State()
	if st.CursorX != 3 || st.CursorY != 2 {
		t.Errorf("cursor = (%d, %d), want (3, 2)", st.CursorX, st.CursorY)
	}
	if st.Clicks != 1 {
		t.Errorf("clicks = %d, want 1", st.Clicks)
	}
	if st.Last.EventType != "click" {
		t.Errorf("last = %+v", st.Last)
	}
}

func TestEditorClampsCursor(t *testing.T) {
	e := NewEditor(testCells, nil)

	data, _ := forward.Encode(forward.Message{EventType: "click", Point: input.Pt(5000, 5000)})
	if err := e.Receive(data); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	st := e.State()
	lastLine := len(DefaultText) - 1
	if st.CursorY != lastLine || st.CursorX != len(DefaultText[lastLine]) {
		t.Errorf("cursor = (%d, %d), want end of text", st.CursorX, st.CursorY)
	}
}

func TestEditorIgnoresOtherEvents(t *testing.T) {
	e := NewEditor(testCells, nil)

	data, _ := forward.Encode(forward.Message{EventType: "mousedown", Point: input.Pt(35, 45)})
	if err := e.Receive(data); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	st := e.State()
	if st.Clicks != 0 || st.CursorX != 0 || st.CursorY != 0 {
		t.Errorf("non-click moved the cursor: %+v", st)
	}
	if st.Last.EventType != "mousedown" {
		t.Errorf("last = %+v", st.Last)
	}
}

func TestEditorRejectsInvalid(t *testing.T) {
	e := NewEditor(testCells, nil)
	if err := e.Receive([]byte(`{"type":"other"}`)); err == nil {
		t.Error("expected error for foreign message")
	}
	if e.State().Clicks != 0 {
		t.Error("invalid message counted")
	}
}

func TestEditorConsume(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := forward.NewChanChannel(8)
	e := NewEditor(testCells, nil)

	done := make(chan error, 1)
	go func() { done <- e.Consume(context.Background(), ch.Messages()) }()

	for _, p := range []input.Point{input.Pt(5, 5), input.Pt(15, 25)} {
		data, _ := forward.Encode(forward.Message{EventType: "click", Point: p})
		if err := ch.Post(data); err != nil {
			t.Fatalf("Post: %v", err)
		}
	}
	_ = ch.Post([]byte("garbage"))
	ch.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Consume: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Consume did not return after close")
	}

	if got := e.State().Clicks; got != 2 {
		t.Errorf("clicks = %d, want 2", got)
	}
}

func TestEditorConsumeStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	e := NewEditor(testCells, nil)
	done := make(chan error, 1)
	go func() { done <- e.Consume(ctx, make(chan []byte)) }()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}

func TestShellEditorWakesOnMessage(t *testing.T) {
	var changes atomic.Int32
	s := New(testCells, WithOnChange(func() { changes.Add(1) }))

	data, _ := forward.Encode(forward.Message{EventType: "click", Point: input.Pt(5, 5)})
	if err := s.Editor().Receive(data); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if changes.Load() != 1 {
		t.Errorf("changes = %d, want 1", changes.Load())
	}
}
