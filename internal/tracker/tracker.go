// Package tracker ties the ledger store to the volume engine.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/storage"
	"github.com/meltforce/liftvolume/internal/volume"
)

// Store is the persistence the service needs. *storage.DB satisfies it.
type Store interface {
	Snapshot(ctx context.Context) ([]models.Exercise, []models.SelectionEntry, error)

	UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, name string) (*models.Exercise, error)
	FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error)
	DistinctValues(ctx context.Context, field string) ([]string, error)
	MuscleGroupCounts(ctx context.Context) ([]models.MuscleGroupCount, error)

	InsertSelection(ctx context.Context, e models.SelectionEntry) (*models.SelectionEntry, error)
	ListSelections(ctx context.Context) ([]models.SelectionEntry, error)
	GetSelection(ctx context.Context, id uuid.UUID) (*models.SelectionEntry, error)
	DeleteSelection(ctx context.Context, id uuid.UUID) error
	DeleteSelectionsByExercise(ctx context.Context, routine, exercise string) (int64, error)
	ListRoutines(ctx context.Context) ([]string, error)

	ReplaceWeeklySummary(ctx context.Context, method string, rows []models.MuscleGroupSummary) error
	GetWeeklySummary(ctx context.Context, method string) (*storage.CachedWeeklySummary, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Service validates ledger writes and runs aggregations over store snapshots.
type Service struct {
	store Store
	log   *slog.Logger
}

// New creates a Service.
func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// engine builds a volume engine over a fresh snapshot.
func (s *Service) engine(ctx context.Context) (*volume.Engine, error) {
	exercises, entries, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return volume.NewEngine(volume.NewCatalog(exercises), entries), nil
}

// WeeklySummary computes the weekly volume per muscle group and refreshes
// the cached copy for the method. A cache write failure is logged, not returned.
func (s *Service) WeeklySummary(ctx context.Context, m volume.Method) ([]models.MuscleGroupSummary, error) {
	if _, err := volume.Resolve(m); err != nil {
		return nil, err
	}
	eng, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := eng.WeeklySummary(m)
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplaceWeeklySummary(ctx, string(m), rows); err != nil {
		s.log.Warn("weekly summary cache refresh failed", "method", m, "error", err)
	}
	return rows, nil
}

// CachedWeeklySummary returns the last materialized weekly summary.
func (s *Service) CachedWeeklySummary(ctx context.Context, m volume.Method) (*storage.CachedWeeklySummary, error) {
	if _, err := volume.Resolve(m); err != nil {
		return nil, err
	}
	return s.store.GetWeeklySummary(ctx, string(m))
}

// SessionSummary computes per-routine volume. A non-empty routine restricts
// the rows to that routine.
func (s *Service) SessionSummary(ctx context.Context, m volume.Method, routine string) ([]models.SessionSummary, error) {
	if _, err := volume.Resolve(m); err != nil {
		return nil, err
	}
	eng, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := eng.SessionSummary(m)
	if err != nil {
		return nil, err
	}
	if routine == "" {
		return rows, nil
	}
	filtered := make([]models.SessionSummary, 0, len(rows))
	for _, r := range rows {
		if r.Routine == routine {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Contributions returns the slot credits of one ledger entry.
func (s *Service) Contributions(ctx context.Context, id uuid.UUID, m volume.Method) ([]volume.Contribution, error) {
	f, err := volume.Resolve(m)
	if err != nil {
		return nil, err
	}
	entry, err := s.store.GetSelection(ctx, id)
	if err != nil {
		return nil, err
	}
	ex, err := s.store.GetExercise(ctx, entry.Exercise)
	if errors.Is(err, storage.ErrNotFound) {
		return []volume.Contribution{}, nil
	}
	if err != nil {
		return nil, err
	}
	if out := volume.Contributions(*entry, *ex, f); out != nil {
		return out, nil
	}
	return []volume.Contribution{}, nil
}

// AddEntry validates and stores a ledger entry. Entries naming an exercise
// outside the catalog are accepted; they contribute nothing until it exists.
func (s *Service) AddEntry(ctx context.Context, e models.SelectionEntry) (*models.SelectionEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetExercise(ctx, e.Exercise); errors.Is(err, storage.ErrNotFound) {
		s.log.Info("entry references unknown exercise", "exercise", e.Exercise, "routine", e.Routine)
	} else if err != nil {
		return nil, fmt.Errorf("checking exercise: %w", err)
	}

	stored, err := s.store.InsertSelection(ctx, e)
	if err != nil {
		return nil, err
	}
	s.log.Info("entry added", "id", stored.ID, "routine", stored.Routine, "exercise", stored.Exercise)
	return stored, nil
}

// RemoveEntry deletes a ledger entry by ID.
func (s *Service) RemoveEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteSelection(ctx, id); err != nil {
		return err
	}
	s.log.Info("entry removed", "id", id)
	return nil
}

// RemoveExercise deletes every entry of an exercise within a routine.
func (s *Service) RemoveExercise(ctx context.Context, routine, exercise string) (int64, error) {
	if routine == "" || exercise == "" {
		return 0, fmt.Errorf("%w: routine and exercise are required", models.ErrMalformedEntry)
	}
	n, err := s.store.DeleteSelectionsByExercise(ctx, routine, exercise)
	if err != nil {
		return 0, err
	}
	s.log.Info("exercise removed from routine", "routine", routine, "exercise", exercise, "entries", n)
	return n, nil
}

// Entries returns the ledger.
func (s *Service) Entries(ctx context.Context) ([]models.SelectionEntry, error) {
	return s.store.ListSelections(ctx)
}

// Routines returns the distinct routine labels.
func (s *Service) Routines(ctx context.Context) ([]string, error) {
	return s.store.ListRoutines(ctx)
}

// Exercise looks up one catalog entry.
func (s *Service) Exercise(ctx context.Context, name string) (*models.Exercise, error) {
	return s.store.GetExercise(ctx, name)
}

// Exercises returns the whole catalog.
func (s *Service) Exercises(ctx context.Context) ([]models.Exercise, error) {
	return s.store.ListExercises(ctx)
}

// FilterExercises returns the names of catalog exercises matching f.
func (s *Service) FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error) {
	return s.store.FilterExercises(ctx, f)
}

// FilterOptions returns the selectable values for every filter field.
func (s *Service) FilterOptions(ctx context.Context) (map[string][]string, error) {
	opts := make(map[string][]string, len(models.FilterFields))
	for _, field := range models.FilterFields {
		values, err := s.store.DistinctValues(ctx, field)
		if err != nil {
			return nil, err
		}
		opts[field] = values
	}
	return opts, nil
}

// MuscleGroupCounts returns catalog exercise counts per primary muscle group.
func (s *Service) MuscleGroupCounts(ctx context.Context) ([]models.MuscleGroupCount, error) {
	return s.store.MuscleGroupCounts(ctx)
}
