package config

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/config/watcher"
)

// Watch reloads the file layer whenever the config file changes and then
// calls onChange. A reload that fails is logged and the previous values
// stay in effect. Watch blocks until ctx is done.
func (c *Config) Watch(ctx context.Context, logger *zap.Logger, onChange func(*Config)) error {
	if c.path == "" {
		return ErrNoFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := watcher.New(c.path, watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		if err := c.ReloadFile(); err != nil {
			logger.Warn("config reload failed", zap.String("path", ev.Path), zap.Error(err))
			return
		}
		logger.Info("config reloaded", zap.String("path", ev.Path), zap.Stringer("op", ev.Op))
		if onChange != nil {
			onChange(c)
		}
	})
	return w.Run(ctx)
}
