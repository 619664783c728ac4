package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)(\s+ago)?$`)
	clockRegex     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseDay resolves a calendar day relative to now and returns it as
// YYYY-MM-DD. An empty input means today.
// Supported formats:
// - today, yesterday, tomorrow
// - yyyy-mm-dd (e.g., "2025-06-15")
// - dd/mm/yyyy (e.g., "15/06/2025")
// - X days / X weeks (ahead), X days ago / X weeks ago
func ParseDay(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "", "today":
		return today.Format(dayLayout), nil
	case "yesterday":
		return today.AddDate(0, 0, -1).Format(dayLayout), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(dayLayout), nil
	}

	if day, err := time.ParseInLocation(dayLayout, input, now.Location()); err == nil {
		return day.Format(dayLayout), nil
	}

	if day, err := parseSlashDate(input, now.Location()); err == nil {
		return day.Format(dayLayout), nil
	}

	if day, err := parseRelativeDay(input, today); err == nil {
		return day.Format(dayLayout), nil
	}

	return "", fmt.Errorf("invalid date %q. Use: today, yesterday, yyyy-mm-dd, dd/mm/yyyy, X days or X days ago", input)
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string, loc *time.Location) (time.Time, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// parseRelativeDay parses "3 days", "2 weeks ago" and similar
func parseRelativeDay(input string, today time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid relative day format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	days := amount
	if strings.HasPrefix(matches[2], "week") {
		days = amount * 7
	}
	if days > 366 {
		return time.Time{}, fmt.Errorf("relative dates are limited to one year")
	}
	if matches[3] != "" {
		days = -days
	}

	return today.AddDate(0, 0, days), nil
}

// ParseClock parses an HH:MM time of day into minutes after midnight.
func ParseClock(input string) (int, error) {
	matches := clockRegex.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", input)
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", input)
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes after midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
