// Package export renders summaries and the workout plan as spreadsheet and CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/meltforce/liftvolume/internal/models"
)

// PlanRow is a ledger entry joined with the muscle groups of its exercise.
// Muscle groups are empty when the exercise is not in the catalog.
type PlanRow struct {
	models.SelectionEntry
	PrimaryMuscleGroup   string
	SecondaryMuscleGroup string
	TertiaryMuscleGroup  string
}

var planHeader = []string{
	"Routine", "Exercise", "Sets", "Min Reps", "Max Reps", "RIR", "Weight",
	"Primary Muscle", "Secondary Muscle", "Tertiary Muscle",
}

// Plan joins entries with the catalog, ordered by routine then exercise.
// Unlike the volume engine this is an outer join: unknown exercises stay in
// the plan with blank muscle groups.
func Plan(entries []models.SelectionEntry, exercises []models.Exercise) []PlanRow {
	byName := make(map[string]models.Exercise, len(exercises))
	for _, ex := range exercises {
		byName[ex.Name] = ex
	}

	rows := make([]PlanRow, 0, len(entries))
	for _, e := range entries {
		row := PlanRow{SelectionEntry: e}
		if ex, ok := byName[e.Exercise]; ok {
			row.PrimaryMuscleGroup = ex.PrimaryMuscleGroup
			row.SecondaryMuscleGroup = ex.Attribute("secondary_muscle_group")
			row.TertiaryMuscleGroup = ex.Attribute("tertiary_muscle_group")
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Routine != rows[j].Routine {
			return rows[i].Routine < rows[j].Routine
		}
		return rows[i].Exercise < rows[j].Exercise
	})
	return rows
}

func (r PlanRow) record() []string {
	rir := ""
	if r.RIR != nil {
		rir = strconv.Itoa(*r.RIR)
	}
	return []string{
		r.Routine,
		r.Exercise,
		strconv.Itoa(r.Sets),
		strconv.Itoa(r.MinRepRange),
		strconv.Itoa(r.MaxRepRange),
		rir,
		strconv.FormatFloat(r.Weight, 'f', -1, 64),
		r.PrimaryMuscleGroup,
		r.SecondaryMuscleGroup,
		r.TertiaryMuscleGroup,
	}
}

// WritePlanCSV writes the plan as CSV with a header row.
func WritePlanCSV(w io.Writer, rows []PlanRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(planHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("writing %s/%s: %w", r.Routine, r.Exercise, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
