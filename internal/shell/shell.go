package shell

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/dispatcher"
	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
	"github.com/dshills/swipeshell/internal/input/touch"
	"github.com/dshills/swipeshell/internal/renderer/backend"
)

// Layout constants, in cells.
const (
	// HeaderRows is the indicator bar at the top.
	HeaderRows = 1
	// FooterRows is the feedback line at the bottom.
	FooterRows = 1
	// PanelWidth is the width of an open side panel.
	PanelWidth = 24
)

// QuickActions are the entries of the quick-actions menu.
var QuickActions = []string{"Copy", "Paste", "Select All", "Find"}

// Indicators is the overlay state.
type Indicators struct {
	Active bool
	Left   bool
	Right  bool
}

// State is a snapshot of the shell for drawing.
type State struct {
	Width, Height int
	Orientation   profile.Orientation

	Panel        dispatcher.Panel
	QuickActions bool
	QuickAt      input.Point

	Indicators Indicators
	Feedback   string

	Editor EditorState
	// EditorX, EditorY, EditorWidth and EditorHeight place the editor in cells.
	EditorX, EditorY, EditorWidth, EditorHeight int
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock overrides the time source used for feedback expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the shell logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnChange registers a callback run after every state change. It is
// used to wake the drawing loop and must not call back into the shell.
func WithOnChange(fn func()) Option {
	return func(s *Shell) {
		s.onChange = fn
	}
}

// Shell is the demo shell.
type Shell struct {
	mu sync.Mutex

	cells  backend.Cells
	editor *Editor
	now    func() time.Time
	logger *zap.Logger

	onChange func()

	width, height int
	orientation   profile.Orientation

	panel        dispatcher.Panel
	quickActions bool
	quickAt      input.Point

	indicators Indicators

	feedback      string
	feedbackUntil time.Time
	feedbackTimer *time.Timer
}

// New creates a shell laid out on cells of the given geometry.
func New(cells backend.Cells, opts ...Option) *Shell {
	s := &Shell{
		cells:  cells,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.editor = NewEditor(cells, s.logger.Named("editor"))
	s.editor.onChange = s.changed
	return s
}

// Editor returns the embedded child surface.
func (s *Shell) Editor() *Editor {
	return s.editor
}

// Resize records the screen size in cells.
func (s *Shell) Resize(width, height int, o profile.Orientation) {
	s.update(func() {
		s.width, s.height = width, height
		s.orientation = o
	})
}

// ShowIndicator shows i. The left and right indicators are exclusive.
func (s *Shell) ShowIndicator(i touch.Indicator) {
	s.update(func() {
		switch i {
		case touch.IndicatorActive:
			s.indicators.Active = true
		case touch.IndicatorLeft:
			s.indicators.Left, s.indicators.Right = true, false
		case touch.IndicatorRight:
			s.indicators.Left, s.indicators.Right = false, true
		}
	})
}

// HideHorizontal hides the left and right indicators.
func (s *Shell) HideHorizontal() {
	s.update(func() {
		s.indicators.Left, s.indicators.Right = false, false
	})
}

// HideIndicators hides every indicator.
func (s *Shell) HideIndicators() {
	s.update(func() {
		s.indicators = Indicators{}
	})
}

// ShowPanel opens p, replacing any open panel or menu.
func (s *Shell) ShowPanel(p dispatcher.Panel) {
	s.logger.Debug("show panel", zap.String("panel", string(p)))
	s.update(func() {
		s.panel = p
		s.quickActions = false
	})
}

// HideAllPanels closes panels and the quick-actions menu.
func (s *Shell) HideAllPanels() {
	s.logger.Debug("hide panels")
	s.update(func() {
		s.panel = ""
		s.quickActions = false
	})
}

// ShowQuickActions opens the quick-actions menu at a screen point.
func (s *Shell) ShowQuickActions(at input.Point) {
	s.logger.Debug("show quick actions", zap.Float64("x", at.X), zap.Float64("y", at.Y))
	s.update(func() {
		s.quickActions = true
		s.quickAt = at
	})
}

// ShowFeedback shows label for d. A newer label replaces an older one.
func (s *Shell) ShowFeedback(label string, d time.Duration) {
	s.update(func() {
		s.feedback = label
		s.feedbackUntil = s.now().Add(d)
		if s.feedbackTimer != nil {
			s.feedbackTimer.Stop()
		}
		if s.onChange != nil && d > 0 {
			s.feedbackTimer = time.AfterFunc(d, s.onChange)
		}
	})
}

// Bounds reports the editor's on-screen rectangle in logical pixels. The
// editor is unmounted until the first resize gives it room.
func (s *Shell) Bounds() (input.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, y, w, h := s.editorLayout()
	if w <= 0 || h <= 0 {
		return input.Rect{}, false
	}
	return s.cells.Rect(x, y, w, h), true
}

// State returns a snapshot for drawing. An expired feedback label reads as
// empty.
func (s *Shell) State() State {
	s.mu.Lock()
	st := State{
		Width:        s.width,
		Height:       s.height,
		Orientation:  s.orientation,
		Panel:        s.panel,
		QuickActions: s.quickActions,
		QuickAt:      s.quickAt,
		Indicators:   s.indicators,
	}
	if s.feedback != "" && s.now().Before(s.feedbackUntil) {
		st.Feedback = s.feedback
	}
	st.EditorX, st.EditorY, st.EditorWidth, st.EditorHeight = s.editorLayout()
	s.mu.Unlock()

	st.Editor = s.editor.State()
	return st
}

// Close stops the pending feedback timer.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
		s.feedbackTimer = nil
	}
}

// editorLayout must be called with mu held.
func (s *Shell) editorLayout() (x, y, w, h int) {
	w = s.width
	if s.panel != "" {
		w -= PanelWidth
	}
	return 0, HeaderRows, w, s.height - HeaderRows - FooterRows
}

func (s *Shell) update(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.changed()
}

func (s *Shell) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
