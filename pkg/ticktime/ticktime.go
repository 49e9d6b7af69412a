// Package ticktime normalizes the task service's timestamps into zone-aware instants
// and renders them for the viewer.
package ticktime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the service's date/time pattern without its zone suffix.
const Layout = "2006-01-02T15:04:05.000"

const (
	// time.Parse accepts a fractional second after the seconds field even when the
	// layout omits it, so this matches inputs with and without milliseconds.
	parseLayout = "2006-01-02T15:04:05"

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// ErrInvalidTimestamp is returned when a timestamp has no usable zone suffix or
// its date/time part does not match Layout.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Parse converts a service timestamp such as "2018-02-23T14:30:00.000+0000",
// "2018-02-23T14:30:00.000+05:30", "2018-02-23T14:30:00.000Z" or
// "2018-02-23T14:30:00.000 Europe/Paris" into a zone-aware time.
func Parse(value string) (time.Time, error) {
	prefix, loc, err := splitZone(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(parseLayout, prefix, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, value, err)
	}
	return t, nil
}

// splitZone separates the date/time prefix from the zone suffix and resolves the zone.
func splitZone(value string) (string, *time.Location, error) {
	n := len(value)
	switch {
	case n == 0:
		return "", nil, fmt.Errorf("%w: empty", ErrInvalidTimestamp)

	case value[n-1] == 'Z' && n > 1 && isDigit(value[n-2]):
		return value[:n-1], time.UTC, nil

	case n > 6 && value[n-3] == ':' && isSign(value[n-6]):
		// isoformat() style "+HH:MM"
		off, err := ParseOffset(value[n-6:])
		if err != nil {
			return "", nil, fmt.Errorf("%w %q: %w", ErrInvalidTimestamp, value, err)
		}
		return value[:n-6], off.Location(), nil

	case n > 5 && isSign(value[n-5]):
		off, err := ParseOffset(value[n-5:])
		if err != nil {
			return "", nil, fmt.Errorf("%w %q: %w", ErrInvalidTimestamp, value, err)
		}
		return value[:n-5], off.Location(), nil
	}

	if i := strings.LastIndexByte(value, ' '); i > 0 {
		loc, err := time.LoadLocation(value[i+1:])
		if err != nil {
			return "", nil, fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, value, err)
		}
		return value[:i], loc, nil
	}
	return "", nil, fmt.Errorf("%w %q: no zone suffix", ErrInvalidTimestamp, value)
}

func isSign(b byte) bool {
	return b == '+' || b == '-'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Local converts t into the viewer's zone. A nil loc means time.Local.
func Local(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

// SameDay reports whether a and b fall on the same calendar day in a's zone.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsDST reports whether now falls within the named zone's daylight-saving period.
func IsDST(zone string, now time.Time) (bool, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return false, fmt.Errorf("loading zone %s: %w", zone, err)
	}
	return now.In(loc).IsDST(), nil
}

// Format renders t for display. Midnight is treated as an all-day item and shows
// only the date; note that a task genuinely due at 00:00 renders the same way.
func Format(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}
