package renderer

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/swipeshell/internal/dispatcher"
	"github.com/dshills/swipeshell/internal/renderer/backend"
	"github.com/dshills/swipeshell/internal/shell"
)

// Canvas is the drawing surface a frame is written to.
type Canvas interface {
	Size() (width, height int)
	Clear()
	Show()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Options configures the renderer.
type Options struct {
	Theme    Theme
	TabWidth int
	Cells    backend.Cells

	// ShowHints shows key hints in the footer when no feedback is up.
	ShowHints bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Theme:     DefaultTheme(),
		TabWidth:  4,
		Cells:     backend.DefaultCells(),
		ShowHints: true,
	}
}

// Hint is the footer text shown when no feedback label is up.
const Hint = "drag to swipe · hold for quick actions · Esc quits"

// Renderer draws shell frames.
type Renderer struct {
	mu     sync.Mutex
	canvas Canvas
	opts   Options
	frames uint64
}

// New creates a renderer drawing onto canvas.
func New(canvas Canvas, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	return &Renderer{canvas: canvas, opts: opts}
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Render draws st and flushes it to the screen.
func (r *Renderer) Render(st shell.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.canvas.Size()
	r.canvas.Clear()

	r.renderHeader(st, width)
	r.renderEditor(st)
	if st.Panel != "" {
		r.renderPanel(st.Panel, width-shell.PanelWidth, shell.HeaderRows, shell.PanelWidth, height-shell.HeaderRows-shell.FooterRows)
	}
	if st.QuickActions {
		r.renderQuickActions(st, width, height)
	}
	r.renderFooter(st, width, height)

	r.canvas.Show()
	r.frames++
}

func (r *Renderer) renderHeader(st shell.State, width int) {
	th := r.opts.Theme
	r.fill(0, 0, width, 1, th.Header)
	x := r.text(1, 0, width-1, "swipeshell", th.Header)
	x = r.text(x+2, 0, width-x-2, st.Orientation.String(), th.Header)

	var marks []string
	if st.Indicators.Left {
		marks = append(marks, "◀")
	}
	if st.Indicators.Active {
		marks = append(marks, "●")
	}
	if st.Indicators.Right {
		marks = append(marks, "▶")
	}
	ind := strings.Join(marks, " ")
	if n := uniseg.StringWidth(ind); n > 0 && n < width-x-2 {
		r.text(width-n-1, 0, n, ind, th.Indicator)
	}
}

func (r *Renderer) renderEditor(st shell.State) {
	th := r.opts.Theme
	ed := st.Editor
	tab := strings.Repeat(" ", r.opts.TabWidth)

	for i, line := range ed.Lines {
		if i >= st.EditorHeight {
			break
		}
		y := st.EditorY + i
		r.text(st.EditorX, y, st.EditorWidth, strings.ReplaceAll(line, "\t", tab), th.Base)
	}

	if ed.CursorY < 0 || ed.CursorY >= len(ed.Lines) || ed.CursorY >= st.EditorHeight {
		return
	}
	// Cursor columns count runes before tab expansion.
	line := []rune(ed.Lines[ed.CursorY])
	col := 0
	for i := 0; i < ed.CursorX && i < len(line); i++ {
		if line[i] == '\t' {
			col += r.opts.TabWidth
		} else {
			col++
		}
	}
	ch := ' '
	if ed.CursorX < len(line) && line[ed.CursorX] != '\t' {
		ch = line[ed.CursorX]
	}
	if col < st.EditorWidth {
		r.canvas.SetContent(st.EditorX+col, st.EditorY+ed.CursorY, ch, nil, th.Cursor)
	}
}

// panelContent is the demo content of each panel.
var panelContent = map[dispatcher.Panel][]string{
	dispatcher.PanelSearch:   {"> _", "", "no results"},
	dispatcher.PanelFiles:    {"main.go", "go.mod", "README.md"},
	dispatcher.PanelTerminal: {"$ go test ./...", "ok", "$ _"},
}

func (r *Renderer) renderPanel(p dispatcher.Panel, x, y, w, h int) {
	if w <= 2 || h <= 2 {
		return
	}
	th := r.opts.Theme
	r.fill(x, y, w, h, th.Panel)
	r.box(x, y, w, h, th.Border)

	title := " " + strings.ToUpper(string(p[:1])) + string(p[1:]) + " "
	r.text(x+2, y, w-4, title, th.Border)
	for i, line := range panelContent[p] {
		if i >= h-2 {
			break
		}
		r.text(x+1, y+1+i, w-2, line, th.Panel)
	}
}

func (r *Renderer) renderQuickActions(st shell.State, width, height int) {
	th := r.opts.Theme

	w := 0
	for _, a := range shell.QuickActions {
		if n := uniseg.StringWidth(a); n > w {
			w = n
		}
	}
	w += 4
	h := len(shell.QuickActions) + 2

	x, y := r.opts.Cells.Cell(st.QuickAt)
	// Keep the menu between the header and the footer.
	x = min(max(x, 0), width-w)
	y = min(max(y, shell.HeaderRows), height-shell.FooterRows-h)
	if x < 0 || y < shell.HeaderRows {
		return
	}

	r.fill(x, y, w, h, th.Menu)
	r.box(x, y, w, h, th.Menu)
	for i, a := range shell.QuickActions {
		r.text(x+2, y+1+i, w-3, a, th.Menu)
	}
}

func (r *Renderer) renderFooter(st shell.State, width, height int) {
	th := r.opts.Theme
	y := height - 1
	if y < shell.HeaderRows {
		return
	}
	switch {
	case st.Feedback != "":
		label := " " + st.Feedback + " "
		r.text(1, y, width-1, label, th.Feedback)
	case r.opts.ShowHints:
		r.text(1, y, width-1, Hint, th.Footer)
	}
}

// text draws s at (x, y), clipped to maxWidth cells, and returns the column
// after the last cell drawn.
func (r *Renderer) text(x, y, maxWidth int, s string, style tcell.Style) int {
	end := x + maxWidth
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		runes := []rune(cluster)
		r.canvas.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.canvas.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (r *Renderer) box(x, y, w, h int, style tcell.Style) {
	right, bottom := x+w-1, y+h-1
	for col := x + 1; col < right; col++ {
		r.canvas.SetContent(col, y, tcell.RuneHLine, nil, style)
		r.canvas.SetContent(col, bottom, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < bottom; row++ {
		r.canvas.SetContent(x, row, tcell.RuneVLine, nil, style)
		r.canvas.SetContent(right, row, tcell.RuneVLine, nil, style)
	}
	r.canvas.SetContent(x, y, tcell.RuneULCorner, nil, style)
	r.canvas.SetContent(right, y, tcell.RuneURCorner, nil, style)
	r.canvas.SetContent(x, bottom, tcell.RuneLLCorner, nil, style)
	r.canvas.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}
