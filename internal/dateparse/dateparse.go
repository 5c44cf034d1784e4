// Package dateparse provides natural language parsing for history dates.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parse parses a natural language date string and returns a date in
// YYYY-MM-DD format. Dates are interpreted looking backwards, which is
// what a usage-history range wants.
// Supported formats:
//   - today, yesterday
//   - monday, tuesday, ... (most recent past occurrence)
//   - last week, last month
//   - start of week (Monday), start of month
//   - -N (N days ago)
//   - N days ago, N weeks ago
//   - YYYY-MM-DD (passthrough)
func Parse(input string) string {
	return ParseFrom(input, time.Now())
}

// ParseFrom parses a date relative to the given reference time.
func ParseFrom(input string, now time.Time) string {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "today":
		return formatDate(now)
	case "yesterday":
		return formatDate(now.AddDate(0, 0, -1))
	case "last week", "lastweek":
		return formatDate(now.AddDate(0, 0, -7))
	case "last month", "lastmonth":
		return formatDate(now.AddDate(0, -1, 0))
	case "start of week", "sow":
		return formatDate(lastWeekday(now, time.Monday))
	case "start of month", "som":
		return formatDate(startOfMonth(now))
	}

	// Weekday names
	if day, ok := parseWeekday(input); ok {
		return formatDate(lastWeekday(now, day))
	}

	// -N days format
	if strings.HasPrefix(input, "-") {
		if days, err := strconv.Atoi(input[1:]); err == nil {
			return formatDate(now.AddDate(0, 0, -days))
		}
	}

	// "N days ago" format
	if match := daysAgoPattern.FindStringSubmatch(input); match != nil {
		if days, err := strconv.Atoi(match[1]); err == nil {
			return formatDate(now.AddDate(0, 0, -days))
		}
	}

	// "N weeks ago" format
	if match := weeksAgoPattern.FindStringSubmatch(input); match != nil {
		if weeks, err := strconv.Atoi(match[1]); err == nil {
			return formatDate(now.AddDate(0, 0, -weeks*7))
		}
	}

	// YYYY-MM-DD passthrough
	if datePattern.MatchString(input) {
		return input
	}

	// Return as-is if not recognized
	return input
}

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	daysAgoPattern  = regexp.MustCompile(`^(\d+) days? ago$`)
	weeksAgoPattern = regexp.MustCompile(`^(\d+) weeks? ago$`)
)

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func parseWeekday(input string) (time.Weekday, bool) {
	switch input {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return 0, false
}

// lastWeekday returns the most recent past occurrence of the given weekday.
// If today IS the target weekday, it returns today.
func lastWeekday(now time.Time, target time.Weekday) time.Time {
	daysSince := int(now.Weekday() - target)
	if daysSince < 0 {
		daysSince += 7
	}
	return now.AddDate(0, 0, -daysSince)
}

// startOfMonth returns the first day of the current month.
func startOfMonth(now time.Time) time.Time {
	year, month, _ := now.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
}

// IsValid returns true if the input is a recognized date format.
func IsValid(input string) bool {
	return datePattern.MatchString(Parse(input))
}
