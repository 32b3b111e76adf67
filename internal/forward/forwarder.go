package forward

import (
	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/input"
)

// Surface reports the child surface's on-screen bounds. ok is false while
// the surface is not mounted.
type Surface interface {
	Bounds() (r input.Rect, ok bool)
}

// Forwarder translates and posts pointer events.
type Forwarder struct {
	surface Surface
	channel Channel
	logger  *zap.Logger
}

// New creates a forwarder. A nil logger discards.
func New(surface Surface, channel Channel, logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forwarder{surface: surface, channel: channel, logger: logger}
}

// Forward posts eventType at the local equivalent of screen.
func (f *Forwarder) Forward(eventType string, screen input.Point) {
	if f.surface == nil || f.channel == nil {
		f.logger.Debug("forward dropped: no surface", zap.String("event", eventType))
		return
	}
	bounds, ok := f.surface.Bounds()
	if !ok {
		f.logger.Debug("forward dropped: surface not mounted", zap.String("event", eventType))
		return
	}

	local := Local(screen, bounds)
	data, err := Encode(Message{EventType: eventType, Point: local})
	if err != nil {
		f.logger.Debug("forward dropped", zap.Error(err))
		return
	}
	if err := f.channel.Post(data); err != nil {
		f.logger.Debug("forward dropped", zap.String("event", eventType), zap.Error(err))
		return
	}
	f.logger.Debug("forwarded",
		zap.String("event", eventType),
		zap.Float64("x", local.X),
		zap.Float64("y", local.Y))
}

// Local converts a screen point into bounds-local coordinates.
func Local(screen input.Point, bounds input.Rect) input.Point {
	return screen.Sub(bounds.Min)
}
