package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/touch"
)

// Panel is a shell panel that swipe navigation can reveal.
type Panel string

// Shell panels.
const (
	PanelSearch   Panel = "search"
	PanelFiles    Panel = "files"
	PanelTerminal Panel = "terminal"
)

// ActionKind is what a binding does.
type ActionKind uint8

const (
	// ActionNone does nothing.
	ActionNone ActionKind = iota
	// ActionForwardClick forwards a synthetic click to the child surface.
	ActionForwardClick
	// ActionQuickActions opens the quick-actions context menu.
	ActionQuickActions
	// ActionShowPanel shows Binding.Panel.
	ActionShowPanel
	// ActionHidePanels hides every panel.
	ActionHidePanels
)

// String returns a string representation of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionForwardClick:
		return "forward-click"
	case ActionQuickActions:
		return "quick-actions"
	case ActionShowPanel:
		return "show-panel"
	case ActionHidePanels:
		return "hide-panels"
	default:
		return "none"
	}
}

// Binding connects a gesture to an action.
type Binding struct {
	Gesture   input.Gesture
	Direction input.Direction // swipes only
	Action    ActionKind
	Panel     Panel
	Feedback  time.Duration
}

// Name returns the binding key, for example "tap" or "swipe-left".
func (b Binding) Name() string {
	return bindingKey(b.Gesture, b.Direction)
}

func bindingKey(g input.Gesture, d input.Direction) string {
	if g == input.GestureSwipe {
		return g.String() + "-" + d.String()
	}
	return g.String()
}

// DefaultBindings returns the stock gesture mapping.
func DefaultBindings() []Binding {
	return []Binding{
		{Gesture: input.GestureTap, Action: ActionForwardClick, Feedback: TapFeedback},
		{Gesture: input.GestureLongPress, Action: ActionQuickActions, Feedback: LongPressFeedback},
		{Gesture: input.GestureSwipe, Direction: input.DirLeft, Action: ActionShowPanel, Panel: PanelSearch, Feedback: SwipeFeedback},
		{Gesture: input.GestureSwipe, Direction: input.DirRight, Action: ActionShowPanel, Panel: PanelFiles, Feedback: SwipeFeedback},
		{Gesture: input.GestureSwipe, Direction: input.DirUp, Action: ActionShowPanel, Panel: PanelTerminal, Feedback: SwipeFeedback},
		{Gesture: input.GestureSwipe, Direction: input.DirDown, Action: ActionHidePanels, Feedback: SwipeFeedback},
	}
}

// Table holds bindings by gesture key.
type Table struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// NewTable creates a table from bindings. Later entries replace earlier
// ones with the same key.
func NewTable(bindings []Binding) *Table {
	t := &Table{bindings: make(map[string]Binding, len(bindings))}
	for _, b := range bindings {
		t.bindings[b.Name()] = b
	}
	return t
}

// Set adds or replaces a binding.
func (t *Table) Set(b Binding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings[b.Name()] = b
}

// Remove deletes the binding with the given name.
func (t *Table) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.bindings, name)
}

// Lookup returns the binding for a classification. None never matches.
func (t *Table) Lookup(c touch.Classification) (Binding, bool) {
	if c.Kind == input.GestureNone {
		return Binding{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	b, ok := t.bindings[bindingKey(c.Kind, c.Direction)]
	if !ok || b.Action == ActionNone {
		return Binding{}, false
	}
	return b, true
}

// Names returns all binding names in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.bindings))
	for name := range t.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bindings)
}
