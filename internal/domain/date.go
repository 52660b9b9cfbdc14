package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the MM-dd-yyyy form used in order file names and the
// OrderDate column.
const DateLayout = "01-02-2006"

// DateOf truncates t to its calendar day in UTC. Order dates carry no
// time-of-day component, so every date in the domain passes through here.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an MM-dd-yyyy string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a MM-dd-yyyy date", s)}
	}
	return t, nil
}

// FormatDate renders t as MM-dd-yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
