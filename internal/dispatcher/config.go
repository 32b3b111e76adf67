package dispatcher

import "time"

// Config holds dispatcher configuration options.
type Config struct {
	// QueueSize is the capacity of the fire-and-forget effect queue.
	QueueSize int

	// TapEventType is the event type forwarded to the child surface on tap.
	TapEventType string

	// Bindings maps classifications to shell actions.
	Bindings []Binding
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		QueueSize:    64,
		TapEventType: "click",
		Bindings:     DefaultBindings(),
	}
}

// Feedback durations per gesture.
const (
	TapFeedback       = 300 * time.Millisecond
	LongPressFeedback = 500 * time.Millisecond
	SwipeFeedback     = 400 * time.Millisecond
)
