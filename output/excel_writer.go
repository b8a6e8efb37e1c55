package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"airlift/schedule"
)

const (
	sheetDateLayout = "1/2/2006"
	sheetTimeLayout = "3:04 PM"
)

// exportHeaders is the fixed eleven-column order of the rendered worksheet.
var exportHeaders = []string{
	"First Name", "Last Name", "Flight Number",
	"Arrival Date", "Arrival Time", "Property Name", "Vehicle Standby (arrival)",
	"Departure Date", "Departure Time", "Vehicle Standby (departure)",
	"Status",
}

type ExcelWriter struct{}

// Buffer renders the records into an xlsx byte buffer for an HTTP download
// response.
func (w *ExcelWriter) Buffer(records []schedule.Record) (*bytes.Buffer, error) {
	file, err := w.build(records)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook buffer: %w", err)
	}
	return buffer, nil
}

func (w *ExcelWriter) Write(path string, records []schedule.Record) error {
	file, err := w.build(records)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

func (w *ExcelWriter) build(records []schedule.Record) (*excelize.File, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, record := range records {
		row := i + 2
		for col, value := range exportRow(record) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				_ = file.Close()
				return nil, fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := setColumnWidths(file, sheet); err != nil {
		_ = file.Close()
		return nil, err
	}

	return file, nil
}

func setColumnWidths(file *excelize.File, sheet string) error {
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "C", 15},
		{"D", "E", 13},
		{"F", "F", 22},
		{"G", "G", 20},
		{"H", "I", 13},
		{"J", "J", 22},
		{"K", "K", 11},
	}
	for _, column := range widths {
		if err := file.SetColWidth(sheet, column.from, column.to, column.width); err != nil {
			return fmt.Errorf("set column width %s-%s: %w", column.from, column.to, err)
		}
	}
	return nil
}

func exportRow(record schedule.Record) []string {
	return []string{
		record.FirstName,
		record.LastName,
		record.FlightNumber,
		record.ArrivalTime.Format(sheetDateLayout),
		record.ArrivalTime.Format(sheetTimeLayout),
		record.PropertyName,
		record.VehicleStandbyArrival.Format(sheetTimeLayout),
		record.DepartureTime.Format(sheetDateLayout),
		record.DepartureTime.Format(sheetTimeLayout),
		record.VehicleStandbyDeparture.Format(sheetTimeLayout),
		record.Status,
	}
}

// ExportFileName builds the download filename for an event's schedule
// workbook.
func ExportFileName(eventID int64, now time.Time) string {
	return fmt.Sprintf("flight-schedules-event-%d-%s.xlsx", eventID, now.Format("2006-01-02"))
}
