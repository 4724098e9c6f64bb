package importer

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/meltforce/liftvolume/internal/ingest/catalog"
	"github.com/meltforce/liftvolume/internal/models"

	_ "modernc.org/sqlite"
)

// legacyDB reads the SQLite database of the desktop workout planner.
type legacyDB struct {
	db *sql.DB
}

// openLegacy opens an existing legacy database. It never creates one.
func openLegacy(path string) (*legacyDB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("legacy database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	return &legacyDB{db: db}, nil
}

func (l *legacyDB) Close() error {
	return l.db.Close()
}

func (l *legacyDB) hasTable(ctx context.Context, name string) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return count > 0, nil
}

// exerciseColumns maps catalog columns to the physical column names of the
// legacy exercises table, which went through several naming schemes.
func (l *legacyDB) exerciseColumns(ctx context.Context) (map[string]string, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('exercises')`)
	if err != nil {
		return nil, fmt.Errorf("reading exercises columns: %w", err)
	}
	defer rows.Close()

	cols := map[string]string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if col, ok := catalog.CanonicalColumn(name); ok {
			if _, dup := cols[col]; !dup {
				cols[col] = name
			}
		}
	}
	return cols, rows.Err()
}

// readExercises returns the usable catalog rows and the number skipped.
func (l *legacyDB) readExercises(ctx context.Context) ([]models.Exercise, int, error) {
	cols, err := l.exerciseColumns(ctx)
	if err != nil {
		return nil, 0, err
	}
	for _, required := range []string{"exercise_name", "primary_muscle_group"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("exercises table has no %s column", required)
		}
	}

	fields := append([]string{"exercise_name"}, models.FilterFields...)
	selects := make([]string, len(fields))
	for i, f := range fields {
		if physical, ok := cols[f]; ok {
			selects[i] = `CAST("` + strings.ReplaceAll(physical, `"`, `""`) + `" AS TEXT)`
		} else {
			selects[i] = "NULL"
		}
	}

	rows, err := l.db.QueryContext(ctx, "SELECT "+strings.Join(selects, ", ")+" FROM exercises")
	if err != nil {
		return nil, 0, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var (
		exercises []models.Exercise
		skipped   int
	)
	for rows.Next() {
		vals := make([]sql.NullString, len(fields))
		dest := make([]any, len(fields))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("scanning exercise: %w", err)
		}

		ex := models.Exercise{Name: strings.TrimSpace(vals[0].String)}
		for i, f := range models.FilterFields {
			v := vals[i+1].String
			if f == "primary_muscle_group" {
				ex.PrimaryMuscleGroup = strings.TrimSpace(v)
				continue
			}
			setOptional(&ex, f, models.StringPtr(v))
		}
		if !ex.Usable() {
			skipped++
			continue
		}
		exercises = append(exercises, ex)
	}
	return exercises, skipped, rows.Err()
}

func setOptional(ex *models.Exercise, field string, v *string) {
	switch field {
	case "secondary_muscle_group":
		ex.SecondaryMuscleGroup = v
	case "tertiary_muscle_group":
		ex.TertiaryMuscleGroup = v
	case "force":
		ex.Force = v
	case "equipment":
		ex.Equipment = v
	case "mechanic":
		ex.Mechanic = v
	case "difficulty":
		ex.Difficulty = v
	}
}

// readSelections returns every legacy ledger row. The legacy schema has no
// constraints, so rows may be incomplete; callers validate them.
func (l *legacyDB) readSelections(ctx context.Context) ([]models.SelectionEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT routine, exercise, sets, min_rep_range, max_rep_range, rir, weight
		FROM user_selection`)
	if err != nil {
		return nil, fmt.Errorf("querying user_selection: %w", err)
	}
	defer rows.Close()

	var entries []models.SelectionEntry
	for rows.Next() {
		var (
			routine, exercise    sql.NullString
			sets, minRep, maxRep sql.NullInt64
			rir                  sql.NullInt64
			weight               sql.NullFloat64
		)
		if err := rows.Scan(&routine, &exercise, &sets, &minRep, &maxRep, &rir, &weight); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		e := models.SelectionEntry{
			Routine:     strings.TrimSpace(routine.String),
			Exercise:    strings.TrimSpace(exercise.String),
			Sets:        int(sets.Int64),
			MinRepRange: int(minRep.Int64),
			MaxRepRange: int(maxRep.Int64),
			Weight:      weight.Float64,
		}
		if rir.Valid {
			v := int(rir.Int64)
			e.RIR = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
