package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftvolume/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Snapshot reads the catalog and the ledger inside one read-only
// repeatable-read transaction, so both views belong to the same point in time.
func (db *DB) Snapshot(ctx context.Context) ([]models.Exercise, []models.SelectionEntry, error) {
	var exercises []models.Exercise
	var entries []models.SelectionEntry

	err := pgx.BeginTxFunc(ctx, db.Pool, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, func(tx pgx.Tx) error {
		var err error
		if exercises, err = listExercises(ctx, tx); err != nil {
			return err
		}
		entries, err = listSelections(ctx, tx)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return exercises, entries, nil
}
