package export

import (
	"fmt"
	"io"

	"github.com/meltforce/liftvolume/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the summary workbook.
const (
	SheetWeekly  = "Weekly Summary"
	SheetSession = "Session Summary"
	SheetPlan    = "Plan"
)

// Workbook holds everything written to the summary spreadsheet. Both
// summaries must have been computed with Method.
type Workbook struct {
	Method  string
	Weekly  []models.MuscleGroupSummary
	Session []models.SessionSummary
	Plan    []PlanRow
}

// WriteXLSX renders the workbook with one sheet per summary type plus the plan.
func (wb Workbook) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWeekly); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{SheetSession, SheetPlan} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	weekly := [][]any{{"Muscle Group", "Total Sets", "Total Reps", "Total Weight"}}
	for _, r := range wb.Weekly {
		weekly = append(weekly, []any{r.MuscleGroup, r.TotalSets, r.TotalReps, r.TotalWeight})
	}

	session := [][]any{{"Routine", "Muscle Group", "Total Sets", "Total Reps"}}
	for _, r := range wb.Session {
		session = append(session, []any{r.Routine, r.MuscleGroup, r.TotalSets, r.TotalReps})
	}

	plan := [][]any{make([]any, len(planHeader))}
	for i, h := range planHeader {
		plan[0][i] = h
	}
	for _, r := range wb.Plan {
		var rir any
		if r.RIR != nil {
			rir = *r.RIR
		}
		plan = append(plan, []any{
			r.Routine, r.Exercise, r.Sets, r.MinRepRange, r.MaxRepRange, rir, r.Weight,
			r.PrimaryMuscleGroup, r.SecondaryMuscleGroup, r.TertiaryMuscleGroup,
		})
	}

	for _, s := range []struct {
		name string
		rows [][]any
	}{
		{SheetWeekly, weekly},
		{SheetSession, session},
		{SheetPlan, plan},
	} {
		if err := writeSheet(f, s.name, s.rows, bold); err != nil {
			return err
		}
	}

	if wb.Method != "" {
		if err := f.SetDocProps(&excelize.DocProperties{
			Title:   "Training volume",
			Subject: "Volume method: " + wb.Method,
		}); err != nil {
			return fmt.Errorf("setting document properties: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return nil
}
