package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"airlift/schedule"
)

// SQLiteStore implements the schedule persistence port on a local SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

var ErrScheduleNotFound = errors.New("flight schedule not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS flight_schedules (
	flight_id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id INTEGER NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	flight_number TEXT NOT NULL,
	property_name TEXT NOT NULL,
	arrival_time TEXT NOT NULL,
	departure_time TEXT NOT NULL,
	vehicle_standby_arrival_time TEXT NOT NULL,
	vehicle_standby_departure_time TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_flight_schedules_event ON flight_schedules(event_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CreateMany inserts all drafts in one transaction and returns them with
// generated identifiers and creation timestamps. Identifiers come straight
// from the insert, so concurrent uploads for the same event cannot
// interleave results.
func (s *SQLiteStore) CreateMany(records []schedule.Record) ([]schedule.Record, error) {
	if len(records) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT INTO flight_schedules (
	event_id,
	first_name,
	last_name,
	flight_number,
	property_name,
	arrival_time,
	departure_time,
	vehicle_standby_arrival_time,
	vehicle_standby_departure_time,
	status,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	// RFC3339 storage keeps second precision; truncate so the returned
	// records match what a later read yields.
	now := time.Now().Truncate(time.Second)
	persisted := make([]schedule.Record, 0, len(records))
	for _, record := range records {
		if record.Status == "" {
			record.Status = schedule.StatusPending
		}
		record.CreatedAt = now

		res, err := stmt.Exec(
			record.EventID,
			record.FirstName,
			record.LastName,
			record.FlightNumber,
			record.PropertyName,
			record.ArrivalTime.Format(time.RFC3339),
			record.DepartureTime.Format(time.RFC3339),
			record.VehicleStandbyArrival.Format(time.RFC3339),
			record.VehicleStandbyDeparture.Format(time.RFC3339),
			record.Status,
			now.Format(time.RFC3339),
		)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("insert flight schedule: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("read inserted row id: %w", err)
		}
		record.ID = id
		persisted = append(persisted, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return persisted, nil
}

func (s *SQLiteStore) FindByEventID(eventID int64) ([]schedule.Record, error) {
	const query = `
SELECT
	flight_id,
	event_id,
	first_name,
	last_name,
	flight_number,
	property_name,
	arrival_time,
	departure_time,
	vehicle_standby_arrival_time,
	vehicle_standby_departure_time,
	status,
	created_at
FROM flight_schedules
WHERE event_id = ?
ORDER BY arrival_time, flight_id;
`

	rows, err := s.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("query flight schedules: %w", err)
	}
	defer rows.Close()

	records := make([]schedule.Record, 0, 64)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flight schedules: %w", err)
	}

	return records, nil
}

// UpdateStatus replaces the workflow status for one schedule.
func (s *SQLiteStore) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("flight schedule id must be > 0")
	}

	res, err := s.db.Exec(`UPDATE flight_schedules SET status = ? WHERE flight_id = ?;`, status, id)
	if err != nil {
		return fmt.Errorf("update flight schedule %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// DeleteSchedule removes one schedule row.
func (s *SQLiteStore) DeleteSchedule(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("flight schedule id must be > 0")
	}

	res, err := s.db.Exec(`DELETE FROM flight_schedules WHERE flight_id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete flight schedule %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByEventID removes every schedule for an event (event cleanup).
func (s *SQLiteStore) DeleteByEventID(eventID int64) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM flight_schedules WHERE event_id = ?;`, eventID)
	if err != nil {
		return 0, fmt.Errorf("delete flight schedules for event %d: %w", eventID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected, nil
}

func scanRecord(rows *sql.Rows) (schedule.Record, error) {
	var (
		record        schedule.Record
		arrivalRaw    string
		departureRaw  string
		standbyArrRaw string
		standbyDepRaw string
		createdRaw    string
	)

	if err := rows.Scan(
		&record.ID,
		&record.EventID,
		&record.FirstName,
		&record.LastName,
		&record.FlightNumber,
		&record.PropertyName,
		&arrivalRaw,
		&departureRaw,
		&standbyArrRaw,
		&standbyDepRaw,
		&record.Status,
		&createdRaw,
	); err != nil {
		return schedule.Record{}, fmt.Errorf("scan flight schedule: %w", err)
	}

	var err error
	record.ArrivalTime, err = time.Parse(time.RFC3339, arrivalRaw)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("parse arrival time %q: %w", arrivalRaw, err)
	}
	record.DepartureTime, err = time.Parse(time.RFC3339, departureRaw)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("parse departure time %q: %w", departureRaw, err)
	}
	record.VehicleStandbyArrival, err = time.Parse(time.RFC3339, standbyArrRaw)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("parse standby arrival time %q: %w", standbyArrRaw, err)
	}
	record.VehicleStandbyDeparture, err = time.Parse(time.RFC3339, standbyDepRaw)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("parse standby departure time %q: %w", standbyDepRaw, err)
	}
	record.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
	if err != nil {
		return schedule.Record{}, fmt.Errorf("parse created at %q: %w", createdRaw, err)
	}

	return record, nil
}
