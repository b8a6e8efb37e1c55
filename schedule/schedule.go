package schedule

import "time"

// StatusPending is the initial workflow status for every imported record.
const StatusPending = "pending"

// Record is the normalized flight schedule row used across the importer,
// storage, and output packages.
type Record struct {
	ID                      int64     `json:"id"`
	EventID                 int64     `json:"eventId"`
	FirstName               string    `json:"firstName"`
	LastName                string    `json:"lastName"`
	FlightNumber            string    `json:"flightNumber"`
	PropertyName            string    `json:"propertyName"`
	ArrivalTime             time.Time `json:"arrivalTime"`
	DepartureTime           time.Time `json:"departureTime"`
	VehicleStandbyArrival   time.Time `json:"vehicleStandbyArrivalTime"`
	VehicleStandbyDeparture time.Time `json:"vehicleStandbyDepartureTime"`
	Status                  string    `json:"status"`
	CreatedAt               time.Time `json:"createdAt"`
}

// Store is the persistence port consumed by the import/export pipeline.
// CreateMany persists the drafts in one batch and returns them with
// identifiers and creation timestamps assigned.
type Store interface {
	CreateMany(records []Record) ([]Record, error)
	FindByEventID(eventID int64) ([]Record, error)
}
