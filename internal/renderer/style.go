package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the styles used for each part of the shell.
type Theme struct {
	Base      tcell.Style
	Header    tcell.Style
	Indicator tcell.Style
	Footer    tcell.Style
	Feedback  tcell.Style
	Cursor    tcell.Style
	Panel     tcell.Style
	Border    tcell.Style
	Menu      tcell.Style
}

// Palette seeds a theme.
type Palette struct {
	Accent     colorful.Color
	Background colorful.Color
	Foreground colorful.Color
}

// DefaultPalette returns the default colors.
func DefaultPalette() Palette {
	return Palette{
		Accent:     colorful.Color{R: 0.12, G: 0.23, B: 0.54},
		Background: colorful.Color{R: 0.07, G: 0.07, B: 0.09},
		Foreground: colorful.Color{R: 0.92, G: 0.92, B: 0.90},
	}
}

// DefaultTheme returns the theme for DefaultPalette.
func DefaultTheme() Theme {
	return NewTheme(DefaultPalette())
}

// NewTheme derives a theme from p. Panels and menus use blends of the accent
// toward the background and foreground in Lab space.
func NewTheme(p Palette) Theme {
	base := tcell.StyleDefault
	accent := rgb(p.Accent)
	fg := rgb(p.Foreground)
	panel := rgb(p.Accent.BlendLab(p.Background, 0.6))
	menu := rgb(p.Accent.BlendLab(p.Foreground, 0.8))
	feedback := rgb(p.Accent.BlendLab(colorful.Color{G: 0.6}, 0.5))

	return Theme{
		Base:      base,
		Header:    base.Background(accent).Foreground(fg).Bold(true),
		Indicator: base.Background(accent).Foreground(tcell.ColorYellow).Bold(true),
		Footer:    base.Foreground(tcell.ColorGray),
		Feedback:  base.Background(feedback).Foreground(fg).Bold(true),
		Cursor:    base.Reverse(true),
		Panel:     base.Background(panel).Foreground(fg),
		Border:    base.Background(panel).Foreground(tcell.ColorSilver),
		Menu:      base.Background(menu).Foreground(tcell.ColorBlack),
	}
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
