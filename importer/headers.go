package importer

import "strings"

const (
	headerFirstName        = "First Name"
	headerLastName         = "Last Name"
	headerFlightNumber     = "Flight Number"
	headerArrivalDate      = "Arrival Date"
	headerArrivalTime      = "Arrival Time"
	headerPropertyName     = "Property Name"
	headerStandbyArrival   = "Vehicle Standby (arrival)"
	headerDepartureDate    = "Departure Date"
	headerDepartureTime    = "Departure Time"
	headerStandbyDeparture = "Vehicle Standby (departure)"
)

// RequiredHeaders is the fixed set of column headers every flight schedule
// workbook must carry. Column order in the workbook does not matter.
var RequiredHeaders = []string{
	headerFirstName,
	headerLastName,
	headerFlightNumber,
	headerArrivalDate,
	headerArrivalTime,
	headerPropertyName,
	headerStandbyArrival,
	headerDepartureDate,
	headerDepartureTime,
	headerStandbyDeparture,
}

// validateHeaders maps each required header to its column index in the
// actual header row and collects the names that are absent.
func validateHeaders(headerRow []string) (map[string]int, []string) {
	positions := make(map[string]int, len(headerRow))
	for index, cell := range headerRow {
		name := strings.TrimSpace(cell)
		if _, seen := positions[name]; !seen {
			positions[name] = index
		}
	}

	columns := make(map[string]int, len(RequiredHeaders))
	missing := make([]string, 0)
	for _, name := range RequiredHeaders {
		index, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = index
	}

	return columns, missing
}
