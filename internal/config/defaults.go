package config

import (
	"github.com/dshills/swipeshell/internal/input/profile"
)

// Default display settings.
const (
	DefaultCellWidth           = 8.0
	DefaultCellHeight          = 16.0
	DefaultOrientationDebounce = "100ms"
	DefaultQueueSize           = 64
	DefaultLogLevel            = "info"
)

// defaults returns the built-in configuration layer.
func defaults() map[string]any {
	c := profile.DefaultCalibration()
	return map[string]any{
		"gesture": map[string]any{
			"swipeDistance":          c.SwipeDistance,
			"landscapeSwipeDistance": c.LandscapeSwipeDistance,
			"velocityMin":            c.VelocityMin,
			"tapDistanceMax":         c.TapDistanceMax,
			"longPress":              c.LongPressDuration.String(),
		},
		"logging": map[string]any{
			"level": DefaultLogLevel,
			"file":  "",
		},
		"display": map[string]any{
			"cellWidth":           DefaultCellWidth,
			"cellHeight":          DefaultCellHeight,
			"orientationDebounce": DefaultOrientationDebounce,
			"queueSize":           int64(DefaultQueueSize),
		},
	}
}
