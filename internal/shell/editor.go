package shell

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/swipeshell/internal/forward"
	"github.com/dshills/swipeshell/internal/renderer/backend"
)

// DefaultText is the demo content of the editor.
var DefaultText = []string{
	"package main",
	"",
	"func main() {",
	"\tprintln(\"swipe left or right to open a panel\")",
	"}",
}

// EditorState is a snapshot of the editor.
type EditorState struct {
	Lines []string

	// CursorX and CursorY are in editor-local cells.
	CursorX, CursorY int

	// Clicks counts accepted click messages.
	Clicks int

	// Last is the most recently decoded message.
	Last forward.Message
}

// Editor is the embedded child surface. It consumes forwarded messages and
// moves its cursor to clicked cells.
type Editor struct {
	mu sync.Mutex

	cells  backend.Cells
	logger *zap.Logger

	onChange func()

	lines            []string
	cursorX, cursorY int
	clicks           int
	last             forward.Message
}

// NewEditor creates an editor holding DefaultText.
func NewEditor(cells backend.Cells, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	lines := make([]string, len(DefaultText))
	copy(lines, DefaultText)
	return &Editor{cells: cells, logger: logger, lines: lines}
}

// Consume receives messages until msgs is closed or ctx is done. Malformed
// messages are logged and skipped.
func (e *Editor) Consume(ctx context.Context, msgs <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := e.Receive(data); err != nil {
				e.logger.Debug("message rejected", zap.Error(err))
			}
		}
	}
}

// Receive handles one encoded message. Click events move the cursor; other
// event types are recorded only.
func (e *Editor) Receive(data []byte) error {
	m, err := forward.Decode(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.last = m
	if m.EventType == "click" {
		x, y := e.cells.Cell(m.Point)
		if len(e.lines) > 0 {
			e.cursorY = clamp(y, 0, len(e.lines)-1)
			e.cursorX = clamp(x, 0, len(e.lines[e.cursorY]))
		}
		e.clicks++
	}
	e.mu.Unlock()

	e.logger.Debug("message received",
		zap.String("event", m.EventType),
		zap.Float64("x", m.Point.X),
		zap.Float64("y", m.Point.Y))

	if e.onChange != nil {
		e.onChange()
	}
	return nil
}

// State returns a snapshot of the editor.
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]string, len(e.lines))
	copy(lines, e.lines)
	return EditorState{
		Lines:   lines,
		CursorX: e.cursorX,
		CursorY: e.cursorY,
		Clicks:  e.clicks,
		Last:    e.last,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
