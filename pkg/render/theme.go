package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewRenderer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewRenderer returns a lipgloss renderer for w. "auto" detects the terminal,
// "always" forces 256-color output and "never" strips all styling.
func NewRenderer(w io.Writer, mode string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w)
	switch strings.ToLower(mode) {
	case "", ColorAuto:
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
	return r, nil
}

// Theme bundles the styles and glyphs the printer uses.
type Theme struct {
	Header   lipgloss.Style
	Due      lipgloss.Style
	Overdue  lipgloss.Style
	Title    lipgloss.Style
	Reminder lipgloss.Style
	Repeat   lipgloss.Style
	Project  lipgloss.Style
	Error    lipgloss.Style

	ReminderGlyph string
	RepeatGlyph   string
	FailGlyph     string

	// Palette colors project names; empty means every project uses the Project style as is.
	Palette []lipgloss.Color
}

// projectColors are cycled through in first-seen order.
var projectColors = []lipgloss.Color{"33", "35", "37", "69", "71", "105", "141", "167", "173", "179", "209"}

// NewTheme returns the default colored theme bound to r.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Due:      r.NewStyle().Foreground(lipgloss.Color("11")),
		Overdue:  r.NewStyle().Foreground(lipgloss.Color("9")),
		Title:    r.NewStyle().Foreground(lipgloss.Color("12")),
		Reminder: r.NewStyle().Foreground(lipgloss.Color("10")),
		Repeat:   r.NewStyle().Foreground(lipgloss.Color("14")),
		Project:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    errorStyle(r),

		ReminderGlyph: "⏰",
		RepeatGlyph:   "↻",
		FailGlyph:     "✖",

		Palette: projectColors,
	}
}

// WithErrorRenderer rebinds the error style to r, which should be the renderer
// for the stream Fail writes to.
func (t Theme) WithErrorRenderer(r *lipgloss.Renderer) Theme {
	t.Error = errorStyle(r)
	return t
}

func errorStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
}

// PlainTheme is NewTheme with all color and emphasis removed.
func PlainTheme() Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewTheme(r)
}
