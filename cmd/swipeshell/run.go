package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/swipeshell/internal/app"
	"github.com/dshills/swipeshell/internal/config"
	"github.com/dshills/swipeshell/internal/dispatcher"
	"github.com/dshills/swipeshell/internal/forward"
	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
	"github.com/dshills/swipeshell/internal/renderer"
	"github.com/dshills/swipeshell/internal/renderer/backend"
	"github.com/dshills/swipeshell/internal/shell"
)

// channelSize bounds the messages waiting for the editor.
const channelSize = 64

// loadConfig loads defaults, the config file and the environment, then
// applies command line overrides.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.New(config.WithFile(configPath))
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Set("logging.level", logLevel)
	}
	if logFile != "" {
		cfg.Set("logging.file", logFile)
	}
	return cfg, nil
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	lc := cfg.Logging()
	logger, err := app.NewLogger(app.LoggerConfig{Level: lc.Level, File: lc.File})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cal, err := cfg.Gesture()
	if err != nil {
		return fmt.Errorf("invalid gesture settings: %w", err)
	}
	dc := cfg.Display()
	cells := backend.Cells{Width: dc.CellWidth, Height: dc.CellHeight}

	term, err := backend.NewTerminal(cells)
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer term.Shutdown()

	sh := shell.New(cells,
		shell.WithLogger(logger.Named("shell")),
		shell.WithOnChange(term.Wake))
	defer sh.Close()

	w, h := term.Size()
	orientation := cells.Orientation(w, h)
	sh.Resize(w, h, orientation)

	channel := forward.NewChanChannel(channelSize)
	defer channel.Close()

	dcfg := dispatcher.DefaultConfig()
	dcfg.QueueSize = dc.QueueSize

	application, err := app.New(app.Options{
		Calibration:         cal,
		Orientation:         orientation,
		OrientationDebounce: dc.OrientationDebounce,
		Display:             sh,
		Navigator:           sh,
		Feedback:            sh,
		Surface:             sh,
		Channel:             channel,
		Dispatch:            dcfg,
		Logger:              logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ropts := renderer.DefaultOptions()
	ropts.Cells = cells
	r := renderer.New(term, ropts)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return application.Run(gctx)
	})
	g.Go(func() error {
		return sh.Editor().Consume(gctx, channel.Messages())
	})
	if cfg.Path() != "" {
		g.Go(func() error {
			return watchConfig(gctx, cfg, application, logger.Named("config"))
		})
	}
	g.Go(func() error {
		// Unblock PollEvent once anything stops the group.
		<-gctx.Done()
		term.Wake()
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return pump(gctx, term, application, sh, r.Render)
	})

	return g.Wait()
}

// watchConfig hands reloaded gesture settings to the application. Invalid
// settings are logged and the running thresholds are kept.
func watchConfig(ctx context.Context, cfg *config.Config, a *app.Application, logger *zap.Logger) error {
	err := cfg.Watch(ctx, logger, func(c *config.Config) {
		cal, err := c.Gesture()
		if err != nil {
			logger.Warn("ignoring gesture settings", zap.Error(err))
			return
		}
		if err := a.ReloadCalibration(cal); err != nil {
			logger.Warn("calibration not applied", zap.Error(err))
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		// A missing watch is not worth stopping the demo for.
		logger.Warn("config watch stopped", zap.Error(err))
	}
	return nil
}

type eventSource interface {
	PollEvent() backend.Event
}

type gestureHost interface {
	HandleTouch(ev input.TouchEvent) bool
	OrientationChanged(o profile.Orientation)
}

// pump feeds terminal events to the gesture host and redraws after each
// one. It returns when the user quits or ctx is done.
func pump(ctx context.Context, src eventSource, host gestureHost, sh *shell.Shell, draw func(shell.State)) error {
	draw(sh.State())
	for {
		ev := src.PollEvent()
		if ctx.Err() != nil {
			return nil
		}

		switch ev.Type {
		case backend.EventQuit:
			return nil
		case backend.EventKey:
			if ev.Rune == 'q' {
				return nil
			}
			continue
		case backend.EventTouch:
			host.HandleTouch(ev.Touch)
		case backend.EventResize:
			sh.Resize(ev.Width, ev.Height, ev.Orientation)
			host.OrientationChanged(ev.Orientation)
		case backend.EventNone:
			continue
		}
		draw(sh.State())
	}
}
