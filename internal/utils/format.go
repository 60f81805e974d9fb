package utils

import (
	"fmt"
	"time"
)

// HorizonDays is the furthest distance rendered as a weekday name.
const HorizonDays = 7

// DaysBetween counts calendar days from a to b, ignoring time of day and DST.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// FormatHorizon renders "Back Friday." within a week of today, "Back 3/10." beyond,
// optionally with the time of day before the period.
func FormatHorizon(t, today time.Time, includeTime bool) string {
	var when string
	if DaysBetween(today, t) <= HorizonDays {
		when = t.Weekday().String()
	} else {
		when = fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	}
	if includeTime {
		return fmt.Sprintf("Back %s %s.", when, FormatTime(t))
	}
	return fmt.Sprintf("Back %s.", when)
}

// FormatTime renders a 12-hour clock time: "8am", "8:30am", "12pm".
func FormatTime(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "am"
	if t.Hour() >= 12 {
		suffix = "pm"
	}
	if t.Minute() == 0 {
		return fmt.Sprintf("%d%s", hour, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", hour, t.Minute(), suffix)
}
