package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/errors"
)

// TimeOfDay is an hour and minute on a 24-hour clock.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"thurs":     time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveReturn turns a date token and an optional time token ("" when absent)
// into an absolute timestamp. today is taken from now's calendar date.
func ResolveReturn(dateToken, timeToken string, now time.Time) (time.Time, error) {
	today := StartOfDay(now)
	date, err := ParseDate(dateToken, today)
	if err != nil {
		return time.Time{}, err
	}
	tod, err := ParseTime(timeToken)
	if err != nil {
		return time.Time{}, err
	}
	return Combine(date, tod), nil
}

// ParseDate resolves a weekday name, "tomorrow", M/D or M/D/Y relative to today.
func ParseDate(token string, today time.Time) (time.Time, error) {
	today = StartOfDay(today)
	lower := strings.ToLower(strings.TrimSpace(token))

	if lower == "tomorrow" {
		return today.AddDate(0, 0, 1), nil
	}
	if wd, ok := weekdays[lower]; ok {
		return today.AddDate(0, 0, DaysUntil(today.Weekday(), wd)), nil
	}

	date, ok := parseSeparatedDate(lower, today)
	if !ok {
		return time.Time{}, errors.NewDateError(token)
	}
	return date, nil
}

// DaysUntil returns how many days ahead the next target weekday is, always in [1, 7].
func DaysUntil(from, target time.Weekday) int {
	f := mondayIndex(from)
	t := mondayIndex(target)
	if t > f {
		return t - f
	}
	return 7 - f + t
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func parseSeparatedDate(s string, today time.Time) (time.Time, bool) {
	parts := strings.Split(strings.ReplaceAll(s, "-", "/"), "/")

	switch len(parts) {
	case 2:
		month, ok1 := parseUint(parts[0])
		day, ok2 := parseUint(parts[1])
		if !ok1 || !ok2 {
			return time.Time{}, false
		}
		date, ok := makeDate(today.Year(), month, day, today.Location())
		if !ok {
			return time.Time{}, false
		}
		if date.Before(today) {
			return makeDate(today.Year()+1, month, day, today.Location())
		}
		return date, true
	case 3:
		month, ok1 := parseUint(parts[0])
		day, ok2 := parseUint(parts[1])
		year, ok3 := parseUint(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return time.Time{}, false
		}
		if year < 100 {
			year += 2000
		}
		return makeDate(year, month, day, today.Location())
	default:
		return time.Time{}, false
	}
}

// makeDate rejects combinations that time.Date would normalize, like 2/30.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func parseUint(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseTime parses tokens like "8", "8am", "9:30a.m.", "3pm" or "15:00".
// An empty token yields the default back hour.
func ParseTime(token string) (TimeOfDay, error) {
	if token == "" {
		return TimeOfDay{Hour: constants.DefaultBackHour}, nil
	}

	s := strings.TrimSpace(strings.ToLower(token))

	var pm, am bool
	switch {
	case strings.HasSuffix(s, "pm"):
		s, pm = strings.TrimSuffix(s, "pm"), true
	case strings.HasSuffix(s, "p.m."):
		s, pm = strings.TrimSuffix(s, "p.m."), true
	case strings.HasSuffix(s, "am"):
		s, am = strings.TrimSuffix(s, "am"), true
	case strings.HasSuffix(s, "a.m."):
		s, am = strings.TrimSuffix(s, "a.m."), true
	}
	s = strings.TrimSpace(s)

	var hour, minute int
	var ok bool
	if h, m, found := strings.Cut(s, ":"); found {
		var okH, okM bool
		hour, okH = parseUint(h)
		minute, okM = parseUint(m)
		ok = okH && okM
	} else {
		hour, ok = parseUint(s)
	}
	if !ok {
		return TimeOfDay{}, errors.NewTimeError(token)
	}

	switch {
	case pm && hour < 12:
		hour += 12
	case am && hour == 12:
		hour = 0
	}

	if hour > 23 || minute > 59 {
		return TimeOfDay{}, errors.NewTimeError(token)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Combine places a time of day on date's calendar day.
func Combine(date time.Time, tod TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, 0, 0, date.Location())
}

// ResolveLunchReturn parses an explicit time on today's date, or when timeToken
// is empty rounds now up to the next quarter hour and adds the lunch length.
func ResolveLunchReturn(timeToken string, now time.Time) (time.Time, error) {
	if timeToken != "" {
		tod, err := ParseTime(timeToken)
		if err != nil {
			return time.Time{}, err
		}
		return Combine(now, tod), nil
	}

	now = now.Truncate(time.Minute)
	min := now.Minute()
	next := (min/constants.LunchQuarterMin + 1) * constants.LunchQuarterMin
	return now.Add(time.Duration(next-min)*time.Minute + constants.LunchLength), nil
}
