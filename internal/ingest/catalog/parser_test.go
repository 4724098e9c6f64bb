package catalog

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/meltforce/liftvolume/internal/models"
)

const canonicalCSV = `exercise_name,primary_muscle_group,secondary_muscle_group,tertiary_muscle_group,force,equipment,mechanic,difficulty
Bench Press,Chest,Triceps,Shoulders,Push,Barbell,Compound,Intermediate
Squat,Quads,Glutes,,Push,Barbell,Compound,Intermediate
,Chest,,,,,,
Plank,,,,,,,
Curl,Biceps,,,Pull,Dumbbell,Isolation,Beginner
`

// TestParseCanonical verifies canonical headers, optional slots, and skipped rows.
func TestParseCanonical(t *testing.T) {
	res, err := Parse(strings.NewReader(canonicalCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(res.Exercises) != 3 {
		t.Fatalf("exercises = %d, want 3", len(res.Exercises))
	}
	if !reflect.DeepEqual(res.SkippedLines, []int{4, 5}) {
		t.Errorf("SkippedLines = %v, want [4 5]", res.SkippedLines)
	}

	bench := res.Exercises[0]
	if bench.Name != "Bench Press" || bench.PrimaryMuscleGroup != "Chest" {
		t.Errorf("bench = %+v", bench)
	}
	if bench.TertiaryMuscleGroup == nil || *bench.TertiaryMuscleGroup != "Shoulders" {
		t.Errorf("bench tertiary = %v, want Shoulders", bench.TertiaryMuscleGroup)
	}

	squat := res.Exercises[1]
	if squat.TertiaryMuscleGroup != nil {
		t.Errorf("empty tertiary parsed as %q, want nil", *squat.TertiaryMuscleGroup)
	}
}

// TestParseLegacyHeaders verifies the older "Main"/"Sub" column names.
func TestParseLegacyHeaders(t *testing.T) {
	input := "exercise name,Main muscle group,Sub muscle group,equipment\n" +
		"Deadlift,Back,Hamstrings,Barbell\n"
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(res.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(res.Exercises))
	}
	ex := res.Exercises[0]
	if ex.Name != "Deadlift" || ex.PrimaryMuscleGroup != "Back" {
		t.Errorf("exercise = %+v", ex)
	}
	if ex.SecondaryMuscleGroup == nil || *ex.SecondaryMuscleGroup != "Hamstrings" {
		t.Errorf("secondary = %v, want Hamstrings", ex.SecondaryMuscleGroup)
	}
	if ex.Force != nil {
		t.Errorf("force = %q, want nil for a missing column", *ex.Force)
	}
}

func TestParseMissingRequiredColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("exercise_name,equipment\nBench Press,Barbell\n"))
	if err == nil {
		t.Fatal("expected error for missing primary_muscle_group column")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

type fakeStore struct {
	got []models.Exercise
}

func (f *fakeStore) UpsertExercises(_ context.Context, exercises []models.Exercise) (int64, error) {
	f.got = append(f.got, exercises...)
	return int64(len(exercises)), nil
}

func TestProviderIngest(t *testing.T) {
	store := &fakeStore{}
	p := NewProvider(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := p.Ingest(context.Background(), strings.NewReader(canonicalCSV))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.ExercisesReceived != 3 || res.ExercisesUpserted != 3 || res.RowsSkipped != 2 {
		t.Errorf("result = %+v", res)
	}
	if len(store.got) != 3 {
		t.Errorf("store received %d exercises, want 3", len(store.got))
	}
}
