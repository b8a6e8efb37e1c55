package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind tags the shape of a raw spreadsheet cell value. The importer's parser
// chains use it to pick a strategy before attempting any parse.
type Kind int

const (
	KindEmpty Kind = iota
	KindClock
	KindNumeric
	KindText
)

var (
	colonClockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?(\s*[AaPp][Mm])?$`)
	dotClockPattern   = regexp.MustCompile(`^\d{1,2}\.\d{2}$`)
)

// Cell classifies a raw cell value. Clock shapes win over numerics so a dot
// separated time like "7.30" is not mistaken for a fractional-day value;
// fractional-day values carry more than two decimal digits and fall through
// to KindNumeric.
func Cell(raw string) Kind {
	value := strings.TrimSpace(raw)
	if value == "" {
		return KindEmpty
	}
	if colonClockPattern.MatchString(value) || dotClockPattern.MatchString(value) {
		return KindClock
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return KindNumeric
	}
	return KindText
}
