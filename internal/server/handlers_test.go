package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltforce/liftvolume/internal/ingest/catalog"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/tracker"
	"github.com/meltforce/liftvolume/internal/tracker/trackertest"
	"github.com/meltforce/liftvolume/internal/volume"
)

func str(s string) *string { return &s }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := trackertest.NewMemStore(
		models.Exercise{Name: "Bench Press", PrimaryMuscleGroup: "Chest", SecondaryMuscleGroup: str("Triceps"), Equipment: str("Barbell")},
		models.Exercise{Name: "Dumbbell Fly", PrimaryMuscleGroup: "Chest", Equipment: str("Dumbbell")},
		models.Exercise{Name: "Squat", PrimaryMuscleGroup: "Quads", Equipment: str("Barbell")},
	)
	return New(tracker.New(store, log), catalog.NewProvider(store, log), log)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v (body %q)", err, rec.Body.String())
	}
	return v
}

const benchJSON = `{"routine":"A1","exercise":"Bench Press","sets":3,"min_rep_range":8,"max_rep_range":10,"rir":2,"weight":100}`

func addEntry(t *testing.T, s *Server, body string) models.SelectionEntry {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/v1/entries", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /entries status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decode[models.SelectionEntry](t, rec)
}

// TestAddEntryStatusCodes covers created, malformed, and duplicate entries.
func TestAddEntryStatusCodes(t *testing.T) {
	s := newTestServer(t)

	e := addEntry(t, s, benchJSON)
	if e.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("stored entry has no ID")
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"duplicate", benchJSON, http.StatusConflict},
		{"min above max", `{"routine":"A1","exercise":"Bench Press","sets":3,"min_rep_range":12,"max_rep_range":10,"weight":100}`, http.StatusBadRequest},
		{"zero sets", `{"routine":"A1","exercise":"Squat","sets":0,"min_rep_range":5,"max_rep_range":5,"weight":100}`, http.StatusBadRequest},
		{"invalid json", `{"routine":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/entries", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

// TestWeeklySummaryMethodParam verifies the Total default and InvalidMethod rejection.
func TestWeeklySummaryMethodParam(t *testing.T) {
	s := newTestServer(t)
	addEntry(t, s, benchJSON)

	rec := do(t, s, http.MethodGet, "/api/v1/summary/weekly", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	rows := decode[[]models.MuscleGroupSummary](t, rec)
	if len(rows) != 2 || rows[1].MuscleGroup != "Triceps" || rows[1].TotalSets != 3 {
		t.Errorf("default method rows = %+v, want Total credits", rows)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/summary/weekly?method=Direct", "")
	rows = decode[[]models.MuscleGroupSummary](t, rec)
	if len(rows) != 1 || rows[0].MuscleGroup != "Chest" {
		t.Errorf("Direct rows = %+v, want only Chest", rows)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/summary/weekly?method=total", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown method status = %d, want 400", rec.Code)
	}
}

// TestEmptyResultsAreArrays verifies empty collections encode as [] not null.
func TestEmptyResultsAreArrays(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/api/v1/entries",
		"/api/v1/routines",
		"/api/v1/summary/weekly",
		"/api/v1/summary/session",
		"/api/v1/exercises?equipment=Kettlebell",
	} {
		rec := do(t, s, http.MethodGet, path, "")
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("%s body = %s, want []", path, got)
		}
	}
}

// TestCachedWeeklySummary verifies the cache is filled by a computation.
func TestCachedWeeklySummary(t *testing.T) {
	s := newTestServer(t)
	addEntry(t, s, benchJSON)

	do(t, s, http.MethodGet, "/api/v1/summary/weekly?method=Fractional", "")
	rec := do(t, s, http.MethodGet, "/api/v1/summary/weekly/cached?method=Fractional", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cached struct {
		Method string                      `json:"method"`
		Rows   []models.MuscleGroupSummary `json:"rows"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&cached); err != nil {
		t.Fatal(err)
	}
	if cached.Method != "Fractional" || len(cached.Rows) != 2 {
		t.Errorf("cached = %+v", cached)
	}
}

func TestFilterExercises(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/exercises?primary_muscle_group=Chest&equipment=Barbell", "")
	names := decode[[]string](t, rec)
	if len(names) != 1 || names[0] != "Bench Press" {
		t.Errorf("names = %v, want [Bench Press]", names)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/exercises?colour=red", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", rec.Code)
	}
}

func TestGetExercise(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/exercises/Bench%20Press", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ex := decode[models.Exercise](t, rec); ex.PrimaryMuscleGroup != "Chest" {
		t.Errorf("exercise = %+v", ex)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/exercises/Nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing exercise status = %d, want 404", rec.Code)
	}
}

// TestRemoveEntry covers removal by id, unknown ids, and removal by routine+exercise.
func TestRemoveEntry(t *testing.T) {
	s := newTestServer(t)
	e := addEntry(t, s, benchJSON)

	rec := do(t, s, http.MethodDelete, "/api/v1/entries/"+e.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	rec = do(t, s, http.MethodDelete, "/api/v1/entries/"+e.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
	rec = do(t, s, http.MethodDelete, "/api/v1/entries/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}

	addEntry(t, s, benchJSON)
	rec = do(t, s, http.MethodDelete, "/api/v1/entries?routine=A1&exercise=Bench%20Press", "")
	if got := decode[map[string]int64](t, rec); got["removed"] != 1 {
		t.Errorf("removed = %v, want 1", got)
	}
	rec = do(t, s, http.MethodDelete, "/api/v1/entries?routine=A1", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing exercise status = %d, want 400", rec.Code)
	}
}

func TestContributionsEndpoint(t *testing.T) {
	s := newTestServer(t)
	e := addEntry(t, s, benchJSON)

	rec := do(t, s, http.MethodGet, "/api/v1/entries/"+e.ID.String()+"/contributions?method=Fractional", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	contribs := decode[[]volume.Contribution](t, rec)
	if len(contribs) != 2 || contribs[1].Slot != volume.SlotSecondary || contribs[1].SetsCredit != 1.5 {
		t.Errorf("contributions = %+v", contribs)
	}
}

func TestSessionSummaryRoutineParam(t *testing.T) {
	s := newTestServer(t)
	addEntry(t, s, benchJSON)
	addEntry(t, s, `{"routine":"B1","exercise":"Squat","sets":5,"min_rep_range":5,"max_rep_range":5,"weight":140}`)

	rec := do(t, s, http.MethodGet, "/api/v1/summary/session?routine=B1", "")
	rows := decode[[]models.SessionSummary](t, rec)
	if len(rows) != 1 || rows[0].Routine != "B1" || rows[0].TotalReps != 25 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestCatalogImport(t *testing.T) {
	s := newTestServer(t)
	csv := "exercise name,Main muscle group,Sub muscle group\nDeadlift,Back,Hamstrings\n,Back,\n"

	rec := do(t, s, http.MethodPost, "/api/v1/catalog/import", csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Received int `json:"exercises_received"`
		Skipped  int `json:"rows_skipped"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Received != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v", result)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/muscle-groups", "")
	counts := decode[[]models.MuscleGroupCount](t, rec)
	if len(counts) != 3 || counts[0].MuscleGroup != "Chest" || counts[0].ExerciseCount != 2 {
		t.Errorf("counts = %+v", counts)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/catalog/import", "name,equipment\nX,Y\n")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad CSV status = %d, want 400", rec.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	s := newTestServer(t)
	addEntry(t, s, benchJSON)

	rec := do(t, s, http.MethodGet, "/api/v1/export/plan.csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("plan status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "A1,Bench Press,3,8,10,2,100,Chest,Triceps,") {
		t.Errorf("plan body = %q", rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/v1/export/summary.xlsx?method=Fractional", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("xlsx status = %d", rec.Code)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("xlsx body is not a zip archive")
	}

	rec = do(t, s, http.MethodGet, "/api/v1/export/summary.xlsx?method=Bogus", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid method status = %d, want 400", rec.Code)
	}
}
