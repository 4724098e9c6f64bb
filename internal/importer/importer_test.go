package importer

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/meltforce/liftvolume/internal/tracker/trackertest"
)

// newLegacyDB writes a database in the layout of the desktop planner: the
// catalog uses the older main/sub column names and the ledger has no constraints.
func newLegacyDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			exercise_name TEXT NOT NULL,
			main_muscle_group TEXT NOT NULL,
			sub_muscle_group TEXT,
			equipment TEXT
		)`,
		`CREATE TABLE user_selection (
			routine TEXT,
			exercise TEXT,
			sets INTEGER,
			min_rep_range INTEGER,
			max_rep_range INTEGER,
			rir INTEGER,
			weight REAL
		)`,
		`INSERT INTO exercises (exercise_name, main_muscle_group, sub_muscle_group, equipment) VALUES
			('Bench Press', 'Chest', 'Triceps', 'Barbell'),
			('Squat', 'Quads', NULL, 'Barbell'),
			('Mystery', '', NULL, NULL)`,
		`INSERT INTO user_selection VALUES
			('A1', 'Bench Press', 3, 8, 10, 2, 100),
			('A1', 'Bench Press', 3, 8, 10, 2, 100),
			('B1', 'Squat', 5, 5, 5, NULL, 140),
			('B1', 'Squat', 0, 5, 5, 1, 140),
			('B1', NULL, 3, 8, 10, 1, 50)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	return path
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestImportLegacyDatabase verifies catalog column mapping, validation of
// ledger rows, and duplicate handling.
func TestImportLegacyDatabase(t *testing.T) {
	path := newLegacyDB(t)
	store := trackertest.NewMemStore()
	ctx := context.Background()

	stats, err := New(store, testLogger(), false).Import(ctx, path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if stats.ExercisesRead != 3 || stats.ExercisesUpserted != 2 || stats.ExercisesSkipped != 1 {
		t.Errorf("exercise stats = %+v", stats)
	}
	if stats.EntriesRead != 5 || stats.EntriesInserted != 2 || stats.EntriesMalformed != 2 || stats.EntriesDuplicated != 1 {
		t.Errorf("entry stats = %+v", stats)
	}

	bench, err := store.GetExercise(ctx, "Bench Press")
	if err != nil {
		t.Fatal(err)
	}
	if bench.SecondaryMuscleGroup == nil || *bench.SecondaryMuscleGroup != "Triceps" {
		t.Errorf("secondary = %v, want Triceps", bench.SecondaryMuscleGroup)
	}
	if bench.Equipment == nil || *bench.Equipment != "Barbell" {
		t.Errorf("equipment = %v, want Barbell", bench.Equipment)
	}

	entries, _ := store.ListSelections(ctx)
	for _, e := range entries {
		if e.Exercise == "Squat" && e.RIR != nil {
			t.Errorf("NULL rir imported as %d, want nil", *e.RIR)
		}
	}
}

// TestImportDryRun verifies nothing is written in dry-run mode.
func TestImportDryRun(t *testing.T) {
	path := newLegacyDB(t)
	store := trackertest.NewMemStore()
	ctx := context.Background()

	stats, err := New(store, testLogger(), true).Import(ctx, path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.ExercisesUpserted != 2 {
		t.Errorf("ExercisesUpserted = %d, want 2", stats.ExercisesUpserted)
	}
	// Duplicates are only detected by the store, so dry run counts both copies.
	if stats.EntriesInserted != 3 {
		t.Errorf("EntriesInserted = %d, want 3", stats.EntriesInserted)
	}

	exercises, _ := store.ListExercises(ctx)
	entries, _ := store.ListSelections(ctx)
	if len(exercises) != 0 || len(entries) != 0 {
		t.Errorf("dry run wrote %d exercises and %d entries", len(exercises), len(entries))
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := New(trackertest.NewMemStore(), testLogger(), false).
		Import(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	if err == nil {
		t.Fatal("expected error for missing database")
	}
}
