package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const SPREADSHEET = "1SVpmjx7ElYpOA7Xrgx26VeRo6zRplvI6Xe9f57KKkhE"

type appended struct {
	area   string
	values [][]any
}

// fakeSheets is a minimal stand-in for the Sheets REST API: canned values per range and
// a record of every write.
type fakeSheets struct {
	values  map[string][][]any
	sheets  []*sheets.Sheet
	fail    bool
	gets    []string
	updates []sheets.BatchUpdateValuesRequest
	appends []appended
	clears  []string
	deletes []sheets.BatchUpdateSpreadsheetRequest

	sync.Mutex
}

func newFakeSheets(t *testing.T) (*fakeSheets, *spreadsheet) {
	f := &fakeSheets{
		values: map[string][][]any{},
	}

	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	s, err := newSpreadsheet(context.Background(), srv.Client(), SPREADSHEET, option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	return f, s
}

func (f *fakeSheets) serve(w http.ResponseWriter, r *http.Request) {
	f.Lock()
	defer f.Unlock()

	prefix := "/v4/spreadsheets/" + SPREADSHEET
	path := r.URL.Path

	switch {
	case r.Method == http.MethodGet && path == prefix:
		reply(w, sheets.Spreadsheet{SpreadsheetId: SPREADSHEET, Sheets: f.sheets})

	case r.Method == http.MethodGet && strings.HasPrefix(path, prefix+"/values/"):
		area := strings.TrimPrefix(path, prefix+"/values/")
		f.gets = append(f.gets, area)

		reply(w, sheets.ValueRange{Range: area, MajorDimension: "ROWS", Values: f.values[area]})

	case r.Method == http.MethodPost && path == prefix+"/values:batchUpdate":
		if f.fail {
			forbidden(w)
			return
		}

		rq := sheets.BatchUpdateValuesRequest{}
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.updates = append(f.updates, rq)

		reply(w, sheets.BatchUpdateValuesResponse{SpreadsheetId: SPREADSHEET})

	case r.Method == http.MethodPost && path == prefix+"/values:batchClear":
		rq := sheets.BatchClearValuesRequest{}
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.clears = append(f.clears, rq.Ranges...)

		reply(w, sheets.BatchClearValuesResponse{SpreadsheetId: SPREADSHEET})

	case r.Method == http.MethodPost && strings.HasPrefix(path, prefix+"/values/") && strings.HasSuffix(path, ":append"):
		if f.fail {
			forbidden(w)
			return
		}

		rq := sheets.ValueRange{}
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		area := strings.TrimSuffix(strings.TrimPrefix(path, prefix+"/values/"), ":append")
		f.appends = append(f.appends, appended{area: area, values: rq.Values})

		reply(w, sheets.AppendValuesResponse{SpreadsheetId: SPREADSHEET})

	case r.Method == http.MethodPost && path == prefix+":batchUpdate":
		rq := sheets.BatchUpdateSpreadsheetRequest{}
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.deletes = append(f.deletes, rq)

		reply(w, sheets.BatchUpdateSpreadsheetResponse{SpreadsheetId: SPREADSHEET})

	default:
		http.NotFound(w, r)
	}
}

func reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
}
