package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftvolume/internal/export"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/storage"
	"github.com/meltforce/liftvolume/internal/volume"
)

func (s *Server) handleFilterExercises(w http.ResponseWriter, r *http.Request) {
	var f models.ExerciseFilter
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if !f.Set(key, values[0]) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown filter field: " + key})
			return
		}
	}

	names, err := s.svc.FilterExercises(r.Context(), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(names))
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.svc.FilterOptions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise name"})
		return
	}
	ex, err := s.svc.Exercise(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.MuscleGroupCounts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(counts))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.svc.Exercises(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(exercises))
}

func (s *Server) handleCatalogImport(w http.ResponseWriter, r *http.Request) {
	result, err := s.catalog.Ingest(r.Context(), r.Body)
	if err != nil {
		s.log.Error("catalog import error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Entries(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var e models.SelectionEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	e.ID = uuid.Nil

	stored, err := s.svc.AddEntry(r.Context(), e)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	if err := s.svc.RemoveEntry(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := s.svc.RemoveExercise(r.Context(), q.Get("routine"), q.Get("exercise"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": n})
}

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	m, err := methodParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	contribs, err := s.svc.Contributions(r.Context(), id, m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contribs)
}

func (s *Server) handleRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.svc.Routines(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(routines))
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	m, err := methodParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rows, err := s.svc.WeeklySummary(r.Context(), m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCachedWeeklySummary(w http.ResponseWriter, r *http.Request) {
	m, err := methodParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cached, err := s.svc.CachedWeeklySummary(r.Context(), m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cached)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	m, err := methodParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rows, err := s.svc.SessionSummary(r.Context(), m, r.URL.Query().Get("routine"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	m, err := methodParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ctx := r.Context()

	weekly, err := s.svc.WeeklySummary(ctx, m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err := s.svc.SessionSummary(ctx, m, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := s.plan(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	wb := export.Workbook{Method: string(m), Weekly: weekly, Session: session, Plan: plan}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.xlsx"`)
	if err := wb.WriteXLSX(w); err != nil {
		s.log.Error("xlsx export failed", "error", err)
	}
}

func (s *Server) handleExportPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plan(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="plan.csv"`)
	if err := export.WritePlanCSV(w, plan); err != nil {
		s.log.Error("plan export failed", "error", err)
	}
}

func (s *Server) plan(r *http.Request) ([]export.PlanRow, error) {
	entries, err := s.svc.Entries(r.Context())
	if err != nil {
		return nil, err
	}
	exercises, err := s.svc.Exercises(r.Context())
	if err != nil {
		return nil, err
	}
	return export.Plan(entries, exercises), nil
}

// methodParam reads the method query parameter. A missing parameter means Total.
func methodParam(r *http.Request) (volume.Method, error) {
	v := r.URL.Query().Get("method")
	if v == "" {
		return volume.Total, nil
	}
	return volume.ParseMethod(v)
}

func entryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid entry ID"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, volume.ErrInvalidMethod), errors.Is(err, models.ErrMalformedEntry):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateEntry):
		status = http.StatusConflict
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
