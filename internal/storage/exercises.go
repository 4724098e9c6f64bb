package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftvolume/internal/models"
)

const exerciseColumns = `exercise_name, primary_muscle_group, secondary_muscle_group,
	tertiary_muscle_group, force, equipment, mechanic, difficulty`

// UpsertExercises batch-inserts catalog rows, replacing existing rows with
// the same name. Returns the number of rows written.
func (db *DB) UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	if len(exercises) == 0 {
		return 0, nil
	}

	// A single statement cannot touch the same key twice.
	byName := make(map[string]int, len(exercises))
	deduped := make([]models.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if i, ok := byName[ex.Name]; ok {
			deduped[i] = ex
			continue
		}
		byName[ex.Name] = len(deduped)
		deduped = append(deduped, ex)
	}

	query := `INSERT INTO exercises (` + exerciseColumns + `) VALUES `
	args := make([]any, 0, len(deduped)*8)
	valueStrings := make([]string, 0, len(deduped))

	for i, ex := range deduped {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, ex.Name, ex.PrimaryMuscleGroup, ex.SecondaryMuscleGroup,
			ex.TertiaryMuscleGroup, ex.Force, ex.Equipment, ex.Mechanic, ex.Difficulty)
	}

	query += strings.Join(valueStrings, ",") + ` ON CONFLICT (exercise_name) DO UPDATE SET
		primary_muscle_group = EXCLUDED.primary_muscle_group,
		secondary_muscle_group = EXCLUDED.secondary_muscle_group,
		tertiary_muscle_group = EXCLUDED.tertiary_muscle_group,
		force = EXCLUDED.force,
		equipment = EXCLUDED.equipment,
		mechanic = EXCLUDED.mechanic,
		difficulty = EXCLUDED.difficulty`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListExercises returns the whole catalog ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return listExercises(ctx, db.Pool)
}

func listExercises(ctx context.Context, q querier) ([]models.Exercise, error) {
	rows, err := q.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY exercise_name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	result := []models.Exercise{}
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}

// GetExercise returns one catalog row by name, or ErrNotFound.
func (db *DB) GetExercise(ctx context.Context, name string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE exercise_name = $1`, name)
	ex, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("exercise %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &ex, nil
}

// FilterExercises returns the distinct names of exercises matching every
// non-empty constraint in f.
func (db *DB) FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error) {
	query, args := buildFilterQuery(f)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtering exercises: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning exercise name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// buildFilterQuery builds a parameterized conjunctive filter. Column names
// only ever come from models.FilterFields.
func buildFilterQuery(f models.ExerciseFilter) (string, []any) {
	constraints := f.Constraints()
	var conds []string
	var args []any
	for _, field := range models.FilterFields {
		v, ok := constraints[field]
		if !ok {
			continue
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", field, len(args)))
	}

	query := `SELECT DISTINCT exercise_name FROM exercises`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	return query + ` ORDER BY exercise_name`, args
}

// DistinctValues returns the sorted distinct non-empty values of a filterable
// column.
func (db *DB) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if !slices.Contains(models.FilterFields, field) {
		return nil, fmt.Errorf("unknown filter field %q", field)
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT `+field+` FROM exercises
		 WHERE `+field+` IS NOT NULL AND `+field+` <> ''
		 ORDER BY `+field)
	if err != nil {
		return nil, fmt.Errorf("querying distinct %s: %w", field, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", field, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// MuscleGroupCounts returns the number of exercises per primary muscle group,
// largest first.
func (db *DB) MuscleGroupCounts(ctx context.Context) ([]models.MuscleGroupCount, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT primary_muscle_group, COUNT(*)::int AS exercise_count
		 FROM exercises
		 GROUP BY primary_muscle_group
		 ORDER BY exercise_count DESC, primary_muscle_group`)
	if err != nil {
		return nil, fmt.Errorf("querying muscle group counts: %w", err)
	}
	defer rows.Close()

	result := []models.MuscleGroupCount{}
	for rows.Next() {
		var c models.MuscleGroupCount
		if err := rows.Scan(&c.MuscleGroup, &c.ExerciseCount); err != nil {
			return nil, fmt.Errorf("scanning muscle group count: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func scanExercise(row pgx.Row) (models.Exercise, error) {
	var ex models.Exercise
	err := row.Scan(&ex.Name, &ex.PrimaryMuscleGroup, &ex.SecondaryMuscleGroup,
		&ex.TertiaryMuscleGroup, &ex.Force, &ex.Equipment, &ex.Mechanic, &ex.Difficulty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ex, err
		}
		return ex, fmt.Errorf("scanning exercise: %w", err)
	}
	return ex, nil
}
