package extraction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// MonthFromName maps an English month name or its abbreviation to a month.
func MonthFromName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSuffix(name, "."))]
	return m, ok
}

// ParseDate builds a calendar day (midnight UTC) from the day, month-name
// and year cells of a table row. Two-digit years are read as 20yy.
func ParseDate(day, month, year string) (time.Time, error) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	m, ok := MonthFromName(month)
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", month)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q: %w", year, err)
	}
	if len(year) <= 2 {
		y += 2000
	}

	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != m {
		return time.Time{}, fmt.Errorf("no such day %d %s %d", d, m, y)
	}
	return t, nil
}

// ComposeInstant combines a reading's date with its "HH:mm" time cell.
func ComposeInstant(date time.Time, hhmm string) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("reading has no date")
	}
	clock, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
