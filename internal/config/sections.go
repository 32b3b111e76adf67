package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/swipeshell/internal/input/profile"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File is the log file path. Empty discards logs in the terminal demo.
	File string
}

// DisplayConfig provides type-safe access to terminal host settings.
type DisplayConfig struct {
	// CellWidth and CellHeight convert terminal cells to logical pixels.
	CellWidth  float64
	CellHeight float64

	// OrientationDebounce delays recalibration after a resize.
	OrientationDebounce time.Duration

	// QueueSize bounds the action queue.
	QueueSize int
}

// Gesture returns the calibration described by the gesture section. The
// result is validated.
func (c *Config) Gesture() (profile.Calibration, error) {
	var (
		cal  profile.Calibration
		errs []error
	)
	float := func(path string, dst *float64) {
		v, err := c.GetFloat(path)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}

	float("gesture.swipeDistance", &cal.SwipeDistance)
	float("gesture.landscapeSwipeDistance", &cal.LandscapeSwipeDistance)
	float("gesture.velocityMin", &cal.VelocityMin)
	float("gesture.tapDistanceMax", &cal.TapDistanceMax)

	d, err := c.GetDuration("gesture.longPress")
	if err != nil {
		errs = append(errs, err)
	}
	cal.LongPressDuration = d

	if err := errors.Join(errs...); err != nil {
		return profile.Calibration{}, fmt.Errorf("gesture config: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return profile.Calibration{}, fmt.Errorf("gesture config: %w", err)
	}
	return cal, nil
}

// Logging returns the logging section.
func (c *Config) Logging() LoggingConfig {
	lc := LoggingConfig{Level: DefaultLogLevel}
	if v, err := c.GetString("logging.level"); err == nil && v != "" {
		lc.Level = v
	}
	if v, err := c.GetString("logging.file"); err == nil {
		lc.File = v
	}
	return lc
}

// Display returns the display section. Invalid or non-positive values fall
// back to defaults.
func (c *Config) Display() DisplayConfig {
	dc := DisplayConfig{
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		QueueSize:  DefaultQueueSize,
	}
	dc.OrientationDebounce, _ = time.ParseDuration(DefaultOrientationDebounce)

	if v, err := c.GetFloat("display.cellWidth"); err == nil && v > 0 {
		dc.CellWidth = v
	}
	if v, err := c.GetFloat("display.cellHeight"); err == nil && v > 0 {
		dc.CellHeight = v
	}
	if v, err := c.GetDuration("display.orientationDebounce"); err == nil && v >= 0 {
		dc.OrientationDebounce = v
	}
	if v, err := c.GetInt("display.queueSize"); err == nil && v > 0 {
		dc.QueueSize = v
	}
	return dc
}
