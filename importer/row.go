package importer

import (
	"errors"
	"strings"

	"airlift/schedule"
)

// Row-local failure reasons. The batch layer prefixes each with the 1-based
// row ordinal.
var (
	errInsufficientData = errors.New("Insufficient data")
	errMissingFields    = errors.New("Missing required fields")
	errInvalidDateTime  = errors.New("Invalid date/time format")
)

// processRow extracts the ten required fields from one data row and builds
// a schedule draft. Vehicle standby timestamps reuse the calendar date of
// the paired arrival/departure even when the clock value implies the
// adjacent day.
func processRow(eventID int64, row []string, columns map[string]int) (schedule.Record, error) {
	if len(row) < len(RequiredHeaders) {
		return schedule.Record{}, errInsufficientData
	}

	fields := make(map[string]string, len(RequiredHeaders))
	for _, name := range RequiredHeaders {
		value := cellAt(row, columns[name])
		if value == "" {
			return schedule.Record{}, errMissingFields
		}
		fields[name] = value
	}

	arrivalDate, err := resolveDate(fields[headerArrivalDate])
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	departureDate, err := resolveDate(fields[headerDepartureDate])
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}

	arrivalClock, err := formatClock(fields[headerArrivalTime])
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	departureClock, err := formatClock(fields[headerDepartureTime])
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	standbyArrivalClock, err := formatClock(fields[headerStandbyArrival])
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	standbyDepartureClock, err := formatClock(fields[headerStandbyDeparture])
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}

	arrival, err := composeDateTime(arrivalDate, arrivalClock)
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	departure, err := composeDateTime(departureDate, departureClock)
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	standbyArrival, err := composeDateTime(arrivalDate, standbyArrivalClock)
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}
	standbyDeparture, err := composeDateTime(departureDate, standbyDepartureClock)
	if err != nil {
		return schedule.Record{}, errInvalidDateTime
	}

	return schedule.Record{
		EventID:                 eventID,
		FirstName:               fields[headerFirstName],
		LastName:                fields[headerLastName],
		FlightNumber:            fields[headerFlightNumber],
		PropertyName:            fields[headerPropertyName],
		ArrivalTime:             arrival,
		DepartureTime:           departure,
		VehicleStandbyArrival:   standbyArrival,
		VehicleStandbyDeparture: standbyDeparture,
		Status:                  schedule.StatusPending,
	}, nil
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
