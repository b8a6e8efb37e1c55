package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"airlift/config"
	"airlift/importer"
	"airlift/schedule"
	"airlift/storage"
)

func testConfig() config.Config {
	return config.Config{
		Server:   config.ServerConfig{Port: 8080},
		Database: config.DatabaseConfig{Path: "./airlift.db"},
		Import:   config.ImportConfig{MaxUploadMB: 32},
	}
}

func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "airlift_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("coordinates to cell name: %v", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buffer.Bytes()
}

func uploadWorkbook(t *testing.T, url string, data []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "schedules.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close multipart form: %v", err)
	}

	resp, err := http.Post(url, form.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	return resp
}

var validRow = []string{
	"Dayanat", "Iskandarli", "XY337", "7/23/2025", "23:15",
	"Hilton Hotel", "21:00", "7/26/2025", "14:45", "12:35",
}

func TestImportEndpoint(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ts := httptest.NewServer(NewServer(store, testConfig()))
	defer ts.Close()

	badRow := append([]string(nil), validRow...)
	badRow[3] = "garbage"
	data := buildWorkbook(t, [][]string{importer.RequiredHeaders, validRow, badRow})

	resp := uploadWorkbook(t, ts.URL+"/api/events/7/schedules/import", data)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var summary importer.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalRecords != 2 || summary.ProcessedRecords != 1 || len(summary.FailedRecords) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Message != "Successfully processed 1 records. 1 records failed." {
		t.Fatalf("unexpected message: %q", summary.Message)
	}
	if len(summary.Schedules) != 1 || summary.Schedules[0].ID == 0 {
		t.Fatalf("expected persisted schedule with id, got %+v", summary.Schedules)
	}

	stored, err := store.FindByEventID(7)
	if err != nil {
		t.Fatalf("find by event: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(stored))
	}
}

func TestImportEndpointMissingHeaders(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(openTestStore(t), testConfig()))
	defer ts.Close()

	data := buildWorkbook(t, [][]string{{"First Name", "Last Name"}, validRow})
	resp := uploadWorkbook(t, ts.URL+"/api/events/7/schedules/import", data)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Flight Number") {
		t.Fatalf("expected missing header names in body: %s", body)
	}
}

func TestImportEndpointHeaderOnly(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(openTestStore(t), testConfig()))
	defer ts.Close()

	data := buildWorkbook(t, [][]string{importer.RequiredHeaders})
	resp := uploadWorkbook(t, ts.URL+"/api/events/7/schedules/import", data)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "header row and one data row") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestImportEndpointMissingFile(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(openTestStore(t), testConfig()))
	defer ts.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	_ = form.WriteField("note", "no file here")
	_ = form.Close()

	resp, err := http.Post(ts.URL+"/api/events/7/schedules/import", form.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListEndpoint(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ts := httptest.NewServer(NewServer(store, testConfig()))
	defer ts.Close()

	data := buildWorkbook(t, [][]string{importer.RequiredHeaders, validRow})
	resp := uploadWorkbook(t, ts.URL+"/api/events/7/schedules/import", data)
	resp.Body.Close()

	listResp, err := http.Get(ts.URL + "/api/events/7/schedules")
	if err != nil {
		t.Fatalf("get schedules: %v", err)
	}
	defer listResp.Body.Close()

	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.StatusCode)
	}
	var records []schedule.Record
	if err := json.NewDecoder(listResp.Body).Decode(&records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 1 || records[0].FlightNumber != "XY337" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestExportEndpointRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ts := httptest.NewServer(NewServer(store, testConfig()))
	defer ts.Close()

	data := buildWorkbook(t, [][]string{importer.RequiredHeaders, validRow})
	importResp := uploadWorkbook(t, ts.URL+"/api/events/7/schedules/import", data)
	importResp.Body.Close()

	resp, err := http.Get(ts.URL + "/api/events/7/schedules/export")
	if err != nil {
		t.Fatalf("get export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type: %q", got)
	}
	disposition := resp.Header.Get("Content-Disposition")
	if !strings.HasPrefix(disposition, `attachment; filename="flight-schedules-event-7-`) {
		t.Fatalf("unexpected content disposition: %q", disposition)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export body: %v", err)
	}
	if declared := resp.Header.Get("Content-Length"); declared != strconv.Itoa(len(body)) {
		t.Fatalf("content length %s does not match body size %d", declared, len(body))
	}

	file, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("reopen exported workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		t.Fatalf("read exported rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	exported := rows[1]
	if exported[0] != "Dayanat" || exported[2] != "XY337" || exported[5] != "Hilton Hotel" {
		t.Fatalf("field values lost in round trip: %v", exported)
	}
	if exported[3] != "7/23/2025" || exported[4] != "11:15 PM" {
		t.Fatalf("unexpected arrival formatting: %v", exported)
	}
}

func TestExportEndpointNoRecords(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(openTestStore(t), testConfig()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/events/99/schedules/export")
	if err != nil {
		t.Fatalf("get export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestStatusUpdateAndDelete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ts := httptest.NewServer(NewServer(store, testConfig()))
	defer ts.Close()

	data := buildWorkbook(t, [][]string{importer.RequiredHeaders, validRow})
	importResp := uploadWorkbook(t, ts.URL+"/api/events/7/schedules/import", data)
	var summary importer.Summary
	if err := json.NewDecoder(importResp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	importResp.Body.Close()
	id := summary.Schedules[0].ID

	patch, err := http.NewRequest(http.MethodPatch,
		ts.URL+"/api/schedules/"+strconv.FormatInt(id, 10)+"/status",
		strings.NewReader(`{"status":"confirmed"}`))
	if err != nil {
		t.Fatalf("build patch request: %v", err)
	}
	patchResp, err := http.DefaultClient.Do(patch)
	if err != nil {
		t.Fatalf("patch status: %v", err)
	}
	patchResp.Body.Close()
	if patchResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", patchResp.StatusCode)
	}

	records, err := store.FindByEventID(7)
	if err != nil {
		t.Fatalf("find by event: %v", err)
	}
	if records[0].Status != "confirmed" {
		t.Fatalf("status not updated: %q", records[0].Status)
	}

	del, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/schedules/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		t.Fatalf("build delete request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(del)
	if err != nil {
		t.Fatalf("delete schedule: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", delResp.StatusCode)
	}

	delAgain, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/schedules/"+strconv.FormatInt(id, 10), nil)
	againResp, err := http.DefaultClient.Do(delAgain)
	if err != nil {
		t.Fatalf("delete schedule twice: %v", err)
	}
	againResp.Body.Close()
	if againResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", againResp.StatusCode)
	}
}
