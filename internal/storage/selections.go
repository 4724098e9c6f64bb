package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftvolume/internal/models"
)

const selectionColumns = `id, routine, exercise, sets, min_rep_range, max_rep_range, rir, weight, created_at`

// InsertSelection stores a ledger entry. A zero ID is replaced with a new
// UUID. Returns ErrDuplicateEntry when the same seven-field tuple exists.
func (db *DB) InsertSelection(ctx context.Context, e models.SelectionEntry) (*models.SelectionEntry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO user_selection (id, routine, exercise, sets, min_rep_range, max_rep_range, rir, weight)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at`,
		e.ID, e.Routine, e.Exercise, e.Sets, e.MinRepRange, e.MaxRepRange, e.RIR, e.Weight,
	).Scan(&e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s/%s: %w", e.Routine, e.Exercise, ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("inserting selection: %w", err)
	}
	return &e, nil
}

// ListSelections returns the full ledger ordered by routine then insertion time.
func (db *DB) ListSelections(ctx context.Context) ([]models.SelectionEntry, error) {
	return listSelections(ctx, db.Pool)
}

func listSelections(ctx context.Context, q querier) ([]models.SelectionEntry, error) {
	rows, err := q.Query(ctx,
		`SELECT `+selectionColumns+` FROM user_selection ORDER BY routine, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer rows.Close()

	result := []models.SelectionEntry{}
	for rows.Next() {
		var e models.SelectionEntry
		if err := rows.Scan(&e.ID, &e.Routine, &e.Exercise, &e.Sets, &e.MinRepRange,
			&e.MaxRepRange, &e.RIR, &e.Weight, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetSelection returns one ledger entry, or ErrNotFound.
func (db *DB) GetSelection(ctx context.Context, id uuid.UUID) (*models.SelectionEntry, error) {
	var e models.SelectionEntry
	err := db.Pool.QueryRow(ctx,
		`SELECT `+selectionColumns+` FROM user_selection WHERE id = $1`, id,
	).Scan(&e.ID, &e.Routine, &e.Exercise, &e.Sets, &e.MinRepRange,
		&e.MaxRepRange, &e.RIR, &e.Weight, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying selection %s: %w", id, err)
	}
	return &e, nil
}

// DeleteSelection removes one ledger entry by ID.
func (db *DB) DeleteSelection(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM user_selection WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting selection %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSelectionsByExercise removes every entry of an exercise in a routine.
// Returns the number of rows removed.
func (db *DB) DeleteSelectionsByExercise(ctx context.Context, routine, exercise string) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM user_selection WHERE routine = $1 AND exercise = $2`, routine, exercise)
	if err != nil {
		return 0, fmt.Errorf("deleting %s from routine %s: %w", exercise, routine, err)
	}
	return tag.RowsAffected(), nil
}

// ListRoutines returns the distinct routine labels in the ledger.
func (db *DB) ListRoutines(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `SELECT DISTINCT routine FROM user_selection ORDER BY routine`)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	routines := []string{}
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}
