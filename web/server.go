// Package web exposes the flight-schedule import/export HTTP API. Session
// validation and permission checks happen upstream of this handler.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"airlift/config"
	"airlift/importer"
	"airlift/output"
	"airlift/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	store          *storage.SQLiteStore
	importService  *importer.Service
	maxUploadBytes int64
	mux            *http.ServeMux
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func NewServer(store *storage.SQLiteStore, cfg config.Config) http.Handler {
	server := &Server{
		store:          store,
		importService:  importer.NewService(store),
		maxUploadBytes: cfg.Import.MaxUploadBytes(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/events/{event}/schedules/import", server.handleImport)
	mux.HandleFunc("GET /api/events/{event}/schedules", server.handleList)
	mux.HandleFunc("GET /api/events/{event}/schedules/export", server.handleExport)
	mux.HandleFunc("PATCH /api/schedules/{id}/status", server.handleStatusUpdate)
	mux.HandleFunc("DELETE /api/schedules/{id}", server.handleDelete)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	eventID, err := parsePositiveInt64(r.PathValue("event"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("read upload: %v", err), http.StatusInternalServerError)
		return
	}

	summary, err := s.importService.Import(eventID, data)
	if err != nil {
		var persistErr *importer.PersistError
		if errors.As(err, &persistErr) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// Structural upload problems: unreadable workbook, missing
		// headers, no data rows.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	eventID, err := parsePositiveInt64(r.PathValue("event"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	records, err := s.store.FindByEventID(eventID)
	if err != nil {
		http.Error(w, fmt.Sprintf("list flight schedules: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	eventID, err := parsePositiveInt64(r.PathValue("event"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	records, err := s.store.FindByEventID(eventID)
	if err != nil {
		http.Error(w, fmt.Sprintf("load flight schedules: %v", err), http.StatusInternalServerError)
		return
	}

	writer := &output.ExcelWriter{}
	buffer, err := writer.Buffer(records)
	if err != nil {
		if errors.Is(err, output.ErrNoRecords) {
			http.Error(w, fmt.Sprintf("no flight schedules found for event %d", eventID), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("render workbook: %v", err), http.StatusInternalServerError)
		return
	}

	filename := output.ExportFileName(eventID, time.Now())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.Bytes())
}

func (s *Server) handleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid flight schedule id", http.StatusBadRequest)
		return
	}

	var body statusUpdateRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Status) == "" {
		http.Error(w, "status must not be empty", http.StatusBadRequest)
		return
	}

	if err := s.store.UpdateStatus(id, strings.TrimSpace(body.Status)); err != nil {
		if errors.Is(err, storage.ErrScheduleNotFound) {
			http.Error(w, "flight schedule not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("update flight schedule status: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid flight schedule id", http.StatusBadRequest)
		return
	}

	deleted, err := s.store.DeleteSchedule(id)
	if err != nil {
		http.Error(w, fmt.Sprintf("delete flight schedule: %v", err), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "flight schedule not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePositiveInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("value must be > 0")
	}
	return parsed, nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
