package render

import "github.com/charmbracelet/lipgloss"

// Palette hands out a stable color per project for one run.
type Palette struct {
	colors   []lipgloss.Color
	assigned map[string]lipgloss.Color
}

// NewPalette creates a palette over colors.
func NewPalette(colors []lipgloss.Color) *Palette {
	return &Palette{colors: colors, assigned: make(map[string]lipgloss.Color)}
}

// Color returns the project's color, assigning the next free slot on first sight.
// When every slot is taken, colors are reused in order.
func (p *Palette) Color(project string) (lipgloss.Color, bool) {
	if len(p.colors) == 0 || project == "" {
		return "", false
	}
	if c, ok := p.assigned[project]; ok {
		return c, true
	}
	c := p.colors[len(p.assigned)%len(p.colors)]
	p.assigned[project] = c
	return c, true
}
