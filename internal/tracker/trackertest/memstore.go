// Package trackertest provides an in-memory tracker.Store for tests.
package trackertest

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/storage"
	"github.com/meltforce/liftvolume/internal/volume"
)

// MemStore mirrors the constraints of the PostgreSQL schema in memory.
type MemStore struct {
	mu        sync.Mutex
	exercises map[string]models.Exercise
	entries   []models.SelectionEntry
	weekly    map[string]storage.CachedWeeklySummary

	// ReplaceErr, when set, is returned by ReplaceWeeklySummary.
	ReplaceErr error
}

// NewMemStore returns a store seeded with the given catalog.
func NewMemStore(exercises ...models.Exercise) *MemStore {
	s := &MemStore{
		exercises: make(map[string]models.Exercise),
		weekly:    make(map[string]storage.CachedWeeklySummary),
	}
	for _, ex := range exercises {
		s.exercises[ex.Name] = ex
	}
	return s
}

func (s *MemStore) Snapshot(ctx context.Context) ([]models.Exercise, []models.SelectionEntry, error) {
	exercises, _ := s.ListExercises(ctx)
	entries, _ := s.ListSelections(ctx)
	return exercises, entries, nil
}

func (s *MemStore) UpsertExercises(_ context.Context, exercises []models.Exercise) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range exercises {
		s.exercises[ex.Name] = ex
	}
	return int64(len(exercises)), nil
}

func (s *MemStore) ListExercises(_ context.Context) ([]models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Exercise, 0, len(s.exercises))
	for _, ex := range s.exercises {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) GetExercise(_ context.Context, name string) (*models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex, ok := s.exercises[name]
	if !ok {
		return nil, fmt.Errorf("exercise %q: %w", name, storage.ErrNotFound)
	}
	return &ex, nil
}

func (s *MemStore) FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error) {
	exercises, _ := s.ListExercises(ctx)
	return volume.NewCatalog(exercises).Filter(f), nil
}

func (s *MemStore) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if !slices.Contains(models.FilterFields, field) {
		return nil, fmt.Errorf("unknown filter field %q", field)
	}
	exercises, _ := s.ListExercises(ctx)
	seen := map[string]bool{}
	values := []string{}
	for _, ex := range exercises {
		v := ex.Attribute(field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func (s *MemStore) MuscleGroupCounts(ctx context.Context) ([]models.MuscleGroupCount, error) {
	exercises, _ := s.ListExercises(ctx)
	counts := map[string]int{}
	for _, ex := range exercises {
		counts[ex.PrimaryMuscleGroup]++
	}
	out := []models.MuscleGroupCount{}
	for g, n := range counts {
		out = append(out, models.MuscleGroupCount{MuscleGroup: g, ExerciseCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExerciseCount != out[j].ExerciseCount {
			return out[i].ExerciseCount > out[j].ExerciseCount
		}
		return out[i].MuscleGroup < out[j].MuscleGroup
	})
	return out, nil
}

func sameTuple(a, b models.SelectionEntry) bool {
	rirEqual := (a.RIR == nil && b.RIR == nil) || (a.RIR != nil && b.RIR != nil && *a.RIR == *b.RIR)
	return a.Routine == b.Routine && a.Exercise == b.Exercise && a.Sets == b.Sets &&
		a.MinRepRange == b.MinRepRange && a.MaxRepRange == b.MaxRepRange &&
		rirEqual && a.Weight == b.Weight
}

func (s *MemStore) InsertSelection(_ context.Context, e models.SelectionEntry) (*models.SelectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.entries {
		if sameTuple(existing, e) {
			return nil, fmt.Errorf("%s/%s: %w", e.Routine, e.Exercise, storage.ErrDuplicateEntry)
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	s.entries = append(s.entries, e)
	return &e, nil
}

func (s *MemStore) ListSelections(_ context.Context) ([]models.SelectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SelectionEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemStore) GetSelection(_ context.Context, id uuid.UUID) (*models.SelectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
}

func (s *MemStore) DeleteSelection(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = slices.Delete(s.entries, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
}

func (s *MemStore) DeleteSelectionsByExercise(_ context.Context, routine, exercise string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e models.SelectionEntry) bool {
		return e.Routine == routine && e.Exercise == exercise
	})
	return int64(before - len(s.entries)), nil
}

func (s *MemStore) ListRoutines(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	routines := []string{}
	for _, e := range s.entries {
		if !seen[e.Routine] {
			seen[e.Routine] = true
			routines = append(routines, e.Routine)
		}
	}
	sort.Strings(routines)
	return routines, nil
}

func (s *MemStore) ReplaceWeeklySummary(_ context.Context, method string, rows []models.MuscleGroupSummary) error {
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.weekly[method] = storage.CachedWeeklySummary{
		Method:      method,
		RefreshedAt: &now,
		Rows:        append([]models.MuscleGroupSummary{}, rows...),
	}
	return nil
}

func (s *MemStore) GetWeeklySummary(_ context.Context, method string) (*storage.CachedWeeklySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.weekly[method]
	if !ok {
		return &storage.CachedWeeklySummary{Method: method, Rows: []models.MuscleGroupSummary{}}, nil
	}
	return &c, nil
}
