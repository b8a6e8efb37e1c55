package output

import (
	"errors"
	"fmt"
	"strings"

	"airlift/schedule"
)

// ErrNoRecords rejects an export with nothing to render; callers surface it
// as a not-found condition.
var ErrNoRecords = errors.New("no flight schedules to export")

type Writer interface {
	Write(path string, records []schedule.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
