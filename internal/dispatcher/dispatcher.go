package dispatcher

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/touch"
)

// Navigator controls the shell's panels.
type Navigator interface {
	ShowPanel(p Panel)
	HideAllPanels()
	ShowQuickActions(at input.Point)
}

// Forwarder sends synthetic pointer events to the child surface.
type Forwarder interface {
	Forward(eventType string, screen input.Point)
}

// Feedback shows a transient label.
type Feedback interface {
	ShowFeedback(label string, d time.Duration)
}

// Targets are the collaborators actions are executed against. Nil targets
// are skipped.
type Targets struct {
	Navigator Navigator
	Forwarder Forwarder
	Feedback  Feedback
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics enables per-binding metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// Dispatcher executes the action bound to each classification.
type Dispatcher struct {
	targets  Targets
	runner   Runner
	table    *Table
	tapEvent string

	metrics *Metrics
	logger  *zap.Logger
}

// New creates a dispatcher. A nil runner runs actions inline.
func New(config Config, targets Targets, runner Runner, opts ...Option) *Dispatcher {
	if runner == nil {
		runner = Inline{}
	}
	bindings := config.Bindings
	if bindings == nil {
		bindings = DefaultBindings()
	}
	tapEvent := config.TapEventType
	if tapEvent == "" {
		tapEvent = DefaultConfig().TapEventType
	}

	d := &Dispatcher{
		targets:  targets,
		runner:   runner,
		table:    NewTable(bindings),
		tapEvent: tapEvent,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the binding table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Dispatch hands the action bound to c to the runner. It does not wait for
// the action and never fails: refused actions are logged and dropped.
func (d *Dispatcher) Dispatch(c touch.Classification) {
	b, ok := d.table.Lookup(c)
	if !ok {
		return
	}

	name := b.Name()
	label := c.Label()
	err := d.runner.Run(name, func() {
		d.execute(b, c)
		if d.targets.Feedback != nil && b.Feedback > 0 {
			d.targets.Feedback.ShowFeedback(label, b.Feedback)
		}
	})
	if err != nil {
		if d.metrics != nil {
			d.metrics.RecordDrop(name)
		}
		d.logger.Debug("dispatch dropped", zap.String("action", name), zap.Error(err))
		return
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(name)
	}
	d.logger.Debug("dispatched",
		zap.String("action", name),
		zap.Stringer("kind", b.Action),
		zap.Stringer("gesture", c))
}

func (d *Dispatcher) execute(b Binding, c touch.Classification) {
	switch b.Action {
	case ActionForwardClick:
		if d.targets.Forwarder != nil {
			d.targets.Forwarder.Forward(d.tapEvent, c.Point)
		}
	case ActionQuickActions:
		if d.targets.Navigator != nil {
			d.targets.Navigator.ShowQuickActions(c.Point)
		}
	case ActionShowPanel:
		if d.targets.Navigator != nil {
			d.targets.Navigator.ShowPanel(b.Panel)
		}
	case ActionHidePanels:
		if d.targets.Navigator != nil {
			d.targets.Navigator.HideAllPanels()
		}
	}
}
