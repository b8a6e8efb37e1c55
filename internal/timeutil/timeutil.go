package timeutil

import (
	"math"
	"time"
)

// serialEpoch is day zero of the 1900 date system used by common spreadsheet
// engines (serial 25569 lands on the Unix epoch).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// DateFromSerial converts a spreadsheet serial day count to the calendar
// date it represents. Fractional parts (time of day) are discarded.
func DateFromSerial(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial))
}

// ClockFromFraction converts a fractional-day value into hour and minute.
// The total is rounded in whole minutes so values arbitrarily close to a
// full hour carry into the next hour instead of yielding minute 60; a value
// rounding up to 24:00 wraps to 00:00.
func ClockFromFraction(fraction float64) (hour, minute int) {
	total := int(math.Round(fraction*24*60)) % (24 * 60)
	return total / 60, total % 60
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
