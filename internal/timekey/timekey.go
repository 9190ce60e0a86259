// Package timekey converts calendar dates and "HH:MM" clock strings into the
// canonical keys the tracker indexes dose logs by.
package timekey

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/medtrack/medtrack/internal/errors"
)

// DateKey returns the canonical "YYYY-MM-DD" identifier for the local calendar
// day of t. It reads the year/month/day fields directly; slicing a UTC ISO
// timestamp would shift the day near midnight in non-UTC zones.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ToMinutes parses a zero-padded 24h "HH:MM" string into minutes since
// midnight. Anything that is not exactly HH:MM fails with ErrMalformedTime.
func ToMinutes(s string) (int, error) {
	h, m, ok := splitClock(s)
	if !ok {
		return 0, errors.Wrap(fmt.Errorf("%q", s), errors.ErrMalformedTime.Code, errors.ErrMalformedTime.Message)
	}
	return h*60 + m, nil
}

// Valid reports whether s is a well-formed "HH:MM" string.
func Valid(s string) bool {
	_, _, ok := splitClock(s)
	return ok
}

func splitClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}
