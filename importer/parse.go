package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"airlift/internal/classify"
	"airlift/internal/timeutil"
)

const (
	isoDateLayout  = "2006-01-02"
	clockLayout    = "15:04"
	composedLayout = "2006-01-02 15:04"

	// Numeric cells at or below this value cannot be calendar dates; real
	// serial day counts for any modern date are well above it.
	minDateSerial = 1000
)

// dateLayouts are tried in priority order; the first layout that yields a
// valid calendar date wins.
var dateLayouts = []string{
	"1/2/2006",   // M/D/YYYY
	"2006-01-02", // ISO
	"2-1-2006",   // D-M-YYYY
}

// fallbackDateLayouts catch free-form date strings that miss the primary
// patterns.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006/01/02",
	"02.01.2006",
	"1/2/06",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
}

// resolveDate normalizes a date cell of unknown shape into an ISO calendar
// date string.
func resolveDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)

	switch classify.Cell(value) {
	case classify.KindEmpty:
		return "", fmt.Errorf("empty date cell")
	case classify.KindClock:
		return "", fmt.Errorf("time value %q where a date was expected", value)
	case classify.KindNumeric:
		serial, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("parse numeric date %q: %w", value, err)
		}
		if serial <= minDateSerial {
			return "", fmt.Errorf("numeric value %q is not a spreadsheet date", value)
		}
		return timeutil.DateFromSerial(serial).Format(isoDateLayout), nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed.Format(isoDateLayout), nil
		}
	}
	for _, layout := range fallbackDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed.Format(isoDateLayout), nil
		}
	}

	return "", fmt.Errorf("unsupported date format: %q", value)
}

// formatClock normalizes a time cell into a zero-padded 24-hour HH:MM
// string. Clock strings (including 12-hour and dot-separated variants) are
// tried before interpreting the value as a spreadsheet fractional-day time.
func formatClock(raw string) (string, error) {
	value := strings.TrimSpace(raw)

	switch classify.Cell(value) {
	case classify.KindEmpty:
		return "", fmt.Errorf("empty time cell")
	case classify.KindClock:
		candidate := strings.ToUpper(value)
		if !strings.Contains(candidate, ":") {
			candidate = strings.Replace(candidate, ".", ":", 1)
		}
		for _, layout := range clockLayouts {
			if parsed, err := time.Parse(layout, candidate); err == nil {
				return parsed.Format(clockLayout), nil
			}
		}
		return "", fmt.Errorf("unsupported time format: %q", value)
	case classify.KindNumeric:
		fraction, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("parse numeric time %q: %w", value, err)
		}
		if fraction < 0 || fraction >= 1 {
			return "", fmt.Errorf("numeric value %q is not a fractional-day time", value)
		}
		hour, minute := timeutil.ClockFromFraction(fraction)
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	return "", fmt.Errorf("unsupported time format: %q", value)
}

// composeDateTime combines a resolved ISO date and a formatted clock string
// into one canonical timestamp.
func composeDateTime(isoDate, clock string) (time.Time, error) {
	parsed, err := time.ParseInLocation(composedLayout, isoDate+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("compose datetime from %q and %q: %w", isoDate, clock, err)
	}
	return parsed, nil
}
