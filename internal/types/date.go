package types

import (
	"strings"
	"time"

	ierr "github.com/flexprice/propbill/internal/errors"
)

const (
	// DateLayout is the wire and storage format of civil dates
	DateLayout = "2006-01-02"
	// DisplayDateLayout is the format dates are rendered in on invoices
	DisplayDateLayout = "01/02/2006"
)

// CivilDate drops the clock part of t, keeping the calendar date as seen in t's location.
// The result is midnight UTC so dates compare with == and Equal regardless of origin.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TodayIn returns the current civil date in loc
func TodayIn(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return CivilDate(now.In(loc))
}

// ParseDate parses a YYYY-MM-DD civil date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid date %q, expected format YYYY-MM-DD", s).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// FormatDisplayDate renders a date as MM/DD/YYYY
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatISODate renders a date as YYYY-MM-DD
func FormatISODate(t time.Time) string {
	return t.Format(DateLayout)
}
