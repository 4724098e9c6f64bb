package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftvolume/internal/models"
)

// CachedWeeklySummary is the materialized weekly summary for one method.
type CachedWeeklySummary struct {
	Method      string                      `json:"method"`
	RefreshedAt *time.Time                  `json:"refreshed_at"`
	Rows        []models.MuscleGroupSummary `json:"rows"`
}

// ReplaceWeeklySummary swaps the cached rows for a method in one transaction.
// The cache is a denormalized copy; nothing reads it back for aggregation.
func (db *DB) ReplaceWeeklySummary(ctx context.Context, method string, rows []models.MuscleGroupSummary) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM weekly_summary WHERE method = $1`, method); err != nil {
			return fmt.Errorf("clearing weekly summary for %s: %w", method, err)
		}
		if len(rows) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, r := range rows {
			batch.Queue(
				`INSERT INTO weekly_summary (method, muscle_group, total_sets, total_reps, total_weight)
				 VALUES ($1, $2, $3, $4, $5)`,
				method, r.MuscleGroup, r.TotalSets, r.TotalReps, r.TotalWeight)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("writing weekly summary for %s: %w", method, err)
		}
		return nil
	})
}

// GetWeeklySummary returns the cached rows for a method.
func (db *DB) GetWeeklySummary(ctx context.Context, method string) (*CachedWeeklySummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT muscle_group, total_sets, total_reps, total_weight, refreshed_at
		 FROM weekly_summary
		 WHERE method = $1
		 ORDER BY muscle_group`, method)
	if err != nil {
		return nil, fmt.Errorf("querying weekly summary: %w", err)
	}
	defer rows.Close()

	result := &CachedWeeklySummary{Method: method, Rows: []models.MuscleGroupSummary{}}
	for rows.Next() {
		var r models.MuscleGroupSummary
		var refreshed time.Time
		if err := rows.Scan(&r.MuscleGroup, &r.TotalSets, &r.TotalReps, &r.TotalWeight, &refreshed); err != nil {
			return nil, fmt.Errorf("scanning weekly summary: %w", err)
		}
		if result.RefreshedAt == nil || refreshed.After(*result.RefreshedAt) {
			result.RefreshedAt = &refreshed
		}
		result.Rows = append(result.Rows, r)
	}
	return result, rows.Err()
}
