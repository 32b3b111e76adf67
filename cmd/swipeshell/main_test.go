package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/swipeshell/internal/input"
	"github.com/dshills/swipeshell/internal/input/profile"
	"github.com/dshills/swipeshell/internal/renderer/backend"
	"github.com/dshills/swipeshell/internal/shell"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, logFile = "", "", ""
	t.Cleanup(func() {
		configPath, logLevel, logFile = "", "", ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		_ = profileCmd.Flags().Set("orientation", "portrait")
		_ = profileCmd.Flags().Set("json", "false")
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "swipeshell "+version)
	assert.Contains(t, out, "Commit: ")
}

func TestProfileCommandDefaults(t *testing.T) {
	out, err := execute(t, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "orientation:        portrait")
	assert.Contains(t, out, "swipe distance min: 50 px")
	assert.Contains(t, out, "long press:         500ms")
}

func TestProfileCommandLandscapeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swipeshell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[gesture]\nlandscapeSwipeDistance = 120\n"), 0o644))

	out, err := execute(t, "profile", "--config", path, "--orientation", "landscape")
	require.NoError(t, err)
	assert.Contains(t, out, "orientation:        landscape")
	assert.Contains(t, out, "swipe distance min: 120 px")
}

func TestProfileCommandJSON(t *testing.T) {
	out, err := execute(t, "profile", "--json", "--orientation", "landscape")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), "output is not JSON: %s", out)

	res := gjson.GetMany(out, "orientation", "swipeDistanceMin", "longPressMs", "indicatorDistance")
	assert.Equal(t, "landscape", res[0].String())
	assert.Equal(t, 80.0, res[1].Float())
	assert.Equal(t, int64(500), res[2].Int())
	assert.Equal(t, 40.0, res[3].Float())
}

func TestProfileCommandBadOrientation(t *testing.T) {
	_, err := execute(t, "profile", "--orientation", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestProfileCommandInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swipeshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gesture:\n  tapDistanceMax: 500\n"), 0o644))

	_, err := execute(t, "profile", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gesture settings")
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	configPath, logLevel, logFile = "", "debug", "/tmp/swipeshell.log"
	t.Cleanup(func() { configPath, logLevel, logFile = "", "", "" })

	cfg, err := loadConfig(context.Background())
	require.NoError(t, err)
	lc := cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "/tmp/swipeshell.log", lc.File)
}

type scriptedSource struct {
	events []backend.Event
}

func (s *scriptedSource) PollEvent() backend.Event {
	if len(s.events) == 0 {
		return backend.Event{Type: backend.EventQuit}
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

type hostRecorder struct {
	touches      []input.TouchType
	orientations []profile.Orientation
}

func (h *hostRecorder) HandleTouch(ev input.TouchEvent) bool {
	h.touches = append(h.touches, ev.Type)
	return true
}

func (h *hostRecorder) OrientationChanged(o profile.Orientation) {
	h.orientations = append(h.orientations, o)
}

func TestPump(t *testing.T) {
	src := &scriptedSource{events: []backend.Event{
		{Type: backend.EventResize, Width: 100, Height: 20, Orientation: profile.Landscape},
		{Type: backend.EventNone},
		{Type: backend.EventTouch, Touch: input.TouchEvent{Type: input.TouchStart}},
		{Type: backend.EventTouch, Touch: input.TouchEvent{Type: input.TouchEnd}},
		{Type: backend.EventKey, Rune: 'x'},
		{Type: backend.EventRedraw},
		{Type: backend.EventKey, Rune: 'q'},
		{Type: backend.EventTouch, Touch: input.TouchEvent{Type: input.TouchStart}},
	}}
	host := &hostRecorder{}
	sh := shell.New(backend.DefaultCells())
	frames := 0

	err := pump(context.Background(), src, host, sh, func(shell.State) { frames++ })
	require.NoError(t, err)

	assert.Equal(t, []input.TouchType{input.TouchStart, input.TouchEnd}, host.touches)
	assert.Equal(t, []profile.Orientation{profile.Landscape}, host.orientations)
	assert.Equal(t, 100, sh.State().Width)
	// Initial frame, resize, two touches and the redraw.
	assert.Equal(t, 5, frames)
	assert.Len(t, src.events, 1, "pump should stop at q")
}

func TestPumpStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &scriptedSource{events: []backend.Event{
		{Type: backend.EventTouch, Touch: input.TouchEvent{Type: input.TouchStart}},
	}}
	host := &hostRecorder{}

	err := pump(ctx, src, host, shell.New(backend.DefaultCells()), func(shell.State) {})
	require.NoError(t, err)
	assert.Empty(t, host.touches)
}

func TestHelpMentionsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"run", "profile", "version"} {
		assert.True(t, strings.Contains(out, name), "help should list %s", name)
	}
}
