package importer

import (
	"errors"
	"fmt"
	"strings"

	"airlift/schedule"
)

// ErrEmptyWorkbook rejects uploads without at least one data row below the
// header row.
var ErrEmptyWorkbook = errors.New("file must contain at least a header row and one data row.")

// MissingHeadersError aborts an import before any data row is processed and
// names every absent header.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "missing required headers: " + strings.Join(e.Missing, ", ")
}

// PersistError wraps a batch insert failure so the HTTP boundary can report
// it as a server-side error instead of a bad upload.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "persist schedules: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Summary is the sole contract surfaced to the HTTP boundary after an
// import. A non-empty FailedRecords list is informational, not an error.
type Summary struct {
	TotalRecords     int               `json:"totalRecords"`
	ProcessedRecords int               `json:"processedRecords"`
	FailedRecords    []string          `json:"failedRecords"`
	Schedules        []schedule.Record `json:"schedules"`
	Message          string            `json:"message"`
}

// Service runs the ingestion pipeline: header gate, per-row normalization
// with error partitioning, then one batch insert through the store port.
type Service struct {
	store  schedule.Store
	reader Reader
}

func NewService(store schedule.Store) *Service {
	return &Service{store: store, reader: &ExcelReader{}}
}

// Import processes one uploaded workbook for the given event. Row-local
// failures never abort the batch; only structural problems (unreadable
// workbook, missing headers, no data rows) and store failures return an
// error.
func (s *Service) Import(eventID int64, data []byte) (*Summary, error) {
	rows, err := s.reader.Read(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	columns, missing := validateHeaders(rows[0])
	if len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	summary := &Summary{
		TotalRecords:  len(rows) - 1,
		FailedRecords: make([]string, 0),
		Schedules:     make([]schedule.Record, 0),
	}

	drafts := make([]schedule.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNumber := i + 2 // 1-based, counting the header row
		record, rowErr := processRowGuarded(eventID, row, columns)
		if rowErr != nil {
			summary.FailedRecords = append(summary.FailedRecords, fmt.Sprintf("Row %d: %v", rowNumber, rowErr))
			continue
		}
		drafts = append(drafts, record)
	}

	if len(drafts) > 0 {
		persisted, insertErr := s.store.CreateMany(drafts)
		if insertErr != nil {
			return nil, &PersistError{Err: insertErr}
		}
		summary.Schedules = persisted
	}

	summary.ProcessedRecords = len(drafts)
	summary.Message = fmt.Sprintf("Successfully processed %d records. %d records failed.",
		summary.ProcessedRecords, len(summary.FailedRecords))
	return summary, nil
}

// processRowGuarded converts any panic inside row processing into a
// row-local failure so one malformed row cannot take down the batch.
func processRowGuarded(eventID int64, row []string, columns map[string]int) (record schedule.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return processRow(eventID, row, columns)
}
