package volume

import (
	"reflect"
	"testing"

	"github.com/meltforce/liftvolume/internal/models"
)

func testCatalog() *Catalog {
	return NewCatalog([]models.Exercise{
		{Name: "Bench Press", PrimaryMuscleGroup: "Chest", SecondaryMuscleGroup: str("Triceps"), Equipment: str("Barbell"), Mechanic: str("Compound")},
		{Name: "Dumbbell Fly", PrimaryMuscleGroup: "Chest", Equipment: str("Dumbbell"), Mechanic: str("Isolation")},
		{Name: "Barbell Row", PrimaryMuscleGroup: "Back", SecondaryMuscleGroup: str("Biceps"), Equipment: str("Barbell"), Force: str("Pull")},
		{Name: "Bench Press", PrimaryMuscleGroup: "Chest", SecondaryMuscleGroup: str("Triceps"), Equipment: str("Barbell"), Mechanic: str("Compound")},
	})
}

// TestCatalogFilterConjunction verifies every constraint must match exactly.
func TestCatalogFilterConjunction(t *testing.T) {
	got := testCatalog().Filter(models.ExerciseFilter{Equipment: "Barbell", PrimaryMuscleGroup: "Chest"})
	if want := []string{"Bench Press"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

// TestCatalogFilterEmpty verifies an empty filter returns every name once.
func TestCatalogFilterEmpty(t *testing.T) {
	got := testCatalog().Filter(models.ExerciseFilter{})
	want := []string{"Barbell Row", "Bench Press", "Dumbbell Fly"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

// TestCatalogFilterNoMatch verifies no matches is an empty slice, not nil.
func TestCatalogFilterNoMatch(t *testing.T) {
	got := testCatalog().Filter(models.ExerciseFilter{Force: "Push"})
	if got == nil || len(got) != 0 {
		t.Errorf("Filter = %#v, want empty slice", got)
	}
}

// TestCatalogFilterOptionalSlot verifies constraints on optional slots never
// match exercises where that slot is absent.
func TestCatalogFilterOptionalSlot(t *testing.T) {
	got := testCatalog().Filter(models.ExerciseFilter{SecondaryMuscleGroup: "Triceps"})
	if want := []string{"Bench Press"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

// TestCatalogLookup covers hits, misses, and de-duplication.
func TestCatalogLookup(t *testing.T) {
	c := testCatalog()
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
	if ex, ok := c.Lookup("Barbell Row"); !ok || ex.PrimaryMuscleGroup != "Back" {
		t.Errorf("Lookup(Barbell Row) = %+v, %v", ex, ok)
	}
	if _, ok := c.Lookup("Deadlift"); ok {
		t.Error("Lookup(Deadlift) found, want absent")
	}
	if all := c.All(); len(all) != 3 || all[0].Name != "Barbell Row" {
		t.Errorf("All = %+v", all)
	}
}
