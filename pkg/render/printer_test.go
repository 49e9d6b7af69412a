package render

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harrisonrobin/ticked/pkg/agenda"
	"github.com/harrisonrobin/ticked/pkg/ticktick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc8 = time.FixedZone("+0800", 8*3600)

func item(title, project string, due, remind time.Time, reminder, repeat bool) agenda.Item {
	return agenda.Item{
		Task: ticktick.Task{
			Title:      title,
			Reminder:   ticktick.Flag(reminder),
			RepeatFlag: ticktick.Flag(repeat),
		},
		Due:     due,
		Remind:  remind,
		Project: project,
	}
}

func TestBucketPlain(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, io.Discard, PlainTheme())

	p.Bucket("today", []agenda.Item{
		item("Stand-up", "Work", time.Date(2024, 1, 1, 9, 30, 0, 0, utc8), time.Date(2024, 1, 1, 9, 15, 0, 0, utc8), true, true),
		item("Pay rent", "Home", time.Date(2024, 1, 1, 0, 0, 0, 0, utc8), time.Time{}, true, false),
		item("Call mum", "Inbox", time.Date(2024, 1, 1, 18, 0, 0, 0, utc8), time.Time{}, false, false),
	})

	want := strings.Join([]string{
		"=== TODAY ===",
		"2024-01-01 09:30 Stand-up ⏰ 2024-01-01 09:15 ↻ #Work",
		"2024-01-01 Pay rent ⏰ #Home",
		"2024-01-01 18:00 Call mum #Inbox",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestEmptyBucketPrintsHeaderOnly(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, io.Discard, PlainTheme())

	p.Bucket("overdue", nil)
	assert.Equal(t, "=== OVERDUE ===\n", out.String())
}

func TestUnscheduledLineHasNoDate(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, io.Discard, PlainTheme())

	p.Bucket("unscheduled", []agenda.Item{item("Someday", "Inbox", time.Time{}, time.Time{}, false, true)})
	assert.Equal(t, "=== UNSCHEDULED ===\nSomeday ↻ #Inbox\n\n", out.String())
}

func TestBucketsOrder(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, io.Discard, PlainTheme())

	p.Buckets(agenda.Buckets{
		Future: []agenda.Item{item("Later", "Home", time.Date(2030, 5, 1, 12, 0, 0, 0, utc8), time.Time{}, false, false)},
	})
	want := "=== OVERDUE ===\n=== TODAY ===\n=== FUTURE ===\n2030-05-01 12:00 Later #Home\n\n=== UNSCHEDULED ===\n"
	assert.Equal(t, want, out.String())
}

func TestColoredOutputHasEscapes(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRenderer(&out, ColorAlways)
	require.NoError(t, err)
	p := NewPrinter(&out, io.Discard, NewTheme(r))

	p.Bucket("overdue", []agenda.Item{item("Taxes", "Home", time.Date(2023, 4, 15, 0, 0, 0, 0, utc8), time.Time{}, false, false)})
	s := out.String()
	assert.Contains(t, s, "\x1b[")
	assert.Contains(t, s, "OVERDUE")
	assert.Contains(t, s, "Taxes")
	assert.Contains(t, s, "#Home")
}

func TestNewRendererModes(t *testing.T) {
	for _, mode := range []string{"", ColorAuto, ColorAlways, ColorNever, "ALWAYS"} {
		_, err := NewRenderer(io.Discard, mode)
		assert.NoError(t, err, mode)
	}
	_, err := NewRenderer(io.Discard, "sometimes")
	assert.Error(t, err)
}

func TestFailWritesMarkedError(t *testing.T) {
	var errOut bytes.Buffer
	p := NewPrinter(io.Discard, &errOut, PlainTheme())

	p.Fail("Could not connect to api.ticktick.com")
	assert.Equal(t, "✖ Could not connect to api.ticktick.com\n", errOut.String())
}

func TestFailUsesErrorStreamRenderer(t *testing.T) {
	var out, errOut bytes.Buffer
	outR, err := NewRenderer(&out, ColorNever)
	require.NoError(t, err)
	errR, err := NewRenderer(&errOut, ColorAlways)
	require.NoError(t, err)
	p := NewPrinter(&out, &errOut, NewTheme(outR).WithErrorRenderer(errR))

	p.Bucket("today", nil)
	p.Fail("boom")
	assert.Equal(t, "=== TODAY ===\n", out.String())
	assert.Contains(t, errOut.String(), "\x1b[")
	assert.Contains(t, errOut.String(), "✖ boom")

	out.Reset()
	errOut.Reset()
	colored, err := NewRenderer(&out, ColorAlways)
	require.NoError(t, err)
	plain, err := NewRenderer(&errOut, ColorNever)
	require.NoError(t, err)
	p = NewPrinter(&out, &errOut, NewTheme(colored).WithErrorRenderer(plain))

	p.Bucket("today", nil)
	p.Fail("boom")
	assert.Contains(t, out.String(), "\x1b[")
	assert.Equal(t, "✖ boom\n", errOut.String())
}

func TestPaletteStablePerProject(t *testing.T) {
	p := NewPalette([]lipgloss.Color{"1", "2"})

	home, ok := p.Color("Home")
	require.True(t, ok)
	work, _ := p.Color("Work")
	again, _ := p.Color("Home")
	third, _ := p.Color("Errands")

	assert.Equal(t, lipgloss.Color("1"), home)
	assert.Equal(t, lipgloss.Color("2"), work)
	assert.Equal(t, home, again)
	assert.Equal(t, lipgloss.Color("1"), third)

	_, ok = p.Color("")
	assert.False(t, ok)
	_, ok = NewPalette(nil).Color("Home")
	assert.False(t, ok)
}
