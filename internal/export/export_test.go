package export

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/meltforce/liftvolume/internal/models"
	"github.com/xuri/excelize/v2"
)

func str(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func samplePlan() []PlanRow {
	entries := []models.SelectionEntry{
		{Routine: "B1", Exercise: "Squat", Sets: 5, MinRepRange: 5, MaxRepRange: 5, Weight: 140},
		{Routine: "A1", Exercise: "Bench Press", Sets: 3, MinRepRange: 8, MaxRepRange: 10, RIR: intPtr(2), Weight: 82.5},
		{Routine: "A1", Exercise: "Cable Fly", Sets: 2, MinRepRange: 12, MaxRepRange: 15, Weight: 20},
	}
	exercises := []models.Exercise{
		{Name: "Bench Press", PrimaryMuscleGroup: "Chest", SecondaryMuscleGroup: str("Triceps"), TertiaryMuscleGroup: str("Shoulders")},
		{Name: "Squat", PrimaryMuscleGroup: "Quads"},
	}
	return Plan(entries, exercises)
}

// TestPlanOrderAndJoin verifies ordering and that unknown exercises are kept.
func TestPlanOrderAndJoin(t *testing.T) {
	rows := samplePlan()
	var got []string
	for _, r := range rows {
		got = append(got, r.Routine+"/"+r.Exercise+"/"+r.PrimaryMuscleGroup)
	}
	want := []string{"A1/Bench Press/Chest", "A1/Cable Fly/", "B1/Squat/Quads"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("plan = %v, want %v", got, want)
	}
}

func TestWritePlanCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlanCSV(&buf, samplePlan()); err != nil {
		t.Fatalf("WritePlanCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Routine,Exercise,Sets,Min Reps,Max Reps,RIR,Weight,Primary Muscle,Secondary Muscle,Tertiary Muscle" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "A1,Bench Press,3,8,10,2,82.5,Chest,Triceps,Shoulders" {
		t.Errorf("bench line = %q", lines[1])
	}
	if lines[3] != "B1,Squat,5,5,5,,140,Quads,," {
		t.Errorf("squat line = %q", lines[3])
	}
}

// TestWriteXLSX verifies the workbook layout by reading it back.
func TestWriteXLSX(t *testing.T) {
	wb := Workbook{
		Method: "Fractional",
		Weekly: []models.MuscleGroupSummary{
			{MuscleGroup: "Chest", TotalSets: 3, TotalReps: 30, TotalWeight: 247.5},
		},
		Session: []models.SessionSummary{
			{Routine: "A1", MuscleGroup: "Chest", TotalSets: 3, TotalReps: 30},
		},
		Plan: samplePlan(),
	}

	var buf bytes.Buffer
	if err := wb.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{SheetWeekly, SheetSession, SheetPlan}; !reflect.DeepEqual(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}

	weekly, err := f.GetRows(SheetWeekly)
	if err != nil {
		t.Fatal(err)
	}
	if len(weekly) != 2 || weekly[0][0] != "Muscle Group" || weekly[1][0] != "Chest" {
		t.Errorf("weekly rows = %v", weekly)
	}

	plan, err := f.GetRows(SheetPlan)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan) != 4 {
		t.Fatalf("plan rows = %d, want 4", len(plan))
	}
	if plan[1][1] != "Bench Press" || plan[3][7] != "Quads" {
		t.Errorf("plan rows = %v", plan)
	}
}
