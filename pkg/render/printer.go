// Package render prints classified tasks as colored terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrisonrobin/ticked/pkg/agenda"
	"github.com/harrisonrobin/ticked/pkg/ticktime"
)

// Printer writes buckets to out and error marks to errOut.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	theme   Theme
	palette *Palette
}

// NewPrinter creates a printer using theme.
func NewPrinter(out, errOut io.Writer, theme Theme) *Printer {
	return &Printer{
		out:     out,
		errOut:  errOut,
		theme:   theme,
		palette: NewPalette(theme.Palette),
	}
}

// Buckets prints every bucket in display order.
func (p *Printer) Buckets(b agenda.Buckets) {
	for _, bucket := range b.Ordered() {
		p.Bucket(bucket.Label, bucket.Items)
	}
}

// Bucket prints the header, one line per item and, if there were items, a blank separator.
// Empty buckets still get their header.
func (p *Printer) Bucket(label string, items []agenda.Item) {
	fmt.Fprintln(p.out, p.theme.Header.Render("=== "+strings.ToUpper(label)+" ==="))
	if len(items) == 0 {
		return
	}
	overdue := strings.EqualFold(label, "overdue")
	for _, it := range items {
		fmt.Fprintln(p.out, p.line(it, overdue))
	}
	fmt.Fprintln(p.out)
}

// line renders: [due] title [reminder] [repeat] #project
func (p *Printer) line(it agenda.Item, overdue bool) string {
	t := p.theme
	var parts []string

	if it.HasDue() {
		due := t.Due
		if overdue {
			due = t.Overdue
		}
		parts = append(parts, due.Render(ticktime.Format(it.Due)))
	}
	parts = append(parts, t.Title.Render(it.Title))

	switch {
	case it.HasRemind():
		parts = append(parts, t.Reminder.Render(t.ReminderGlyph+" "+ticktime.Format(it.Remind)))
	case bool(it.Reminder):
		parts = append(parts, t.Reminder.Render(t.ReminderGlyph))
	}
	if it.RepeatFlag {
		parts = append(parts, t.Repeat.Render(t.RepeatGlyph))
	}

	project := t.Project
	if c, ok := p.palette.Color(it.Project); ok {
		project = project.Foreground(c)
	}
	parts = append(parts, project.Render("#"+it.Project))

	return strings.Join(parts, " ")
}

// Fail writes a marked error line.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.errOut, p.theme.Error.Render(p.theme.FailGlyph+" "+msg))
}
