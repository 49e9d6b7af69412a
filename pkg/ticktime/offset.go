package ticktime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidOffset is returned when a numeric UTC offset cannot be parsed.
var ErrInvalidOffset = errors.New("invalid utc offset")

// Offset is a fixed UTC offset with no daylight-saving transitions, e.g. +0530 or -0600.
type Offset struct {
	Sign    int // +1 or -1
	Hours   int
	Minutes int
}

// ParseOffset parses "+HHMM", "-HHMM" or the colon-delimited "+HH:MM" / "-HH:MM".
func ParseOffset(s string) (Offset, error) {
	compact := strings.Replace(s, ":", "", 1)
	if len(compact) != 5 || (len(s) == 6 && s[3] != ':') {
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	var o Offset
	switch compact[0] {
	case '+':
		o.Sign = 1
	case '-':
		o.Sign = -1
	default:
		return Offset{}, fmt.Errorf("%w: %q: missing sign", ErrInvalidOffset, s)
	}

	digits := compact[1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Offset{}, fmt.Errorf("%w: %q: non-digit", ErrInvalidOffset, s)
		}
	}
	o.Hours, _ = strconv.Atoi(digits[:2])
	o.Minutes, _ = strconv.Atoi(digits[2:])
	if o.Hours > 23 || o.Minutes > 59 {
		return Offset{}, fmt.Errorf("%w: %q: out of range", ErrInvalidOffset, s)
	}
	return o, nil
}

// Duration is the signed distance from UTC.
func (o Offset) Duration() time.Duration {
	return time.Duration(o.Sign) * (time.Duration(o.Hours)*time.Hour + time.Duration(o.Minutes)*time.Minute)
}

// String returns the compact form, e.g. "+0530".
func (o Offset) String() string {
	sign := '+'
	if o.Sign < 0 {
		sign = '-'
	}
	return fmt.Sprintf("%c%02d%02d", sign, o.Hours, o.Minutes)
}

// Location returns a fixed zone named after the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), int(o.Duration()/time.Second))
}
