// Package catalog ingests exercise catalog CSV files.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/meltforce/liftvolume/internal/ingest"
	"github.com/meltforce/liftvolume/internal/models"
)

// Store receives parsed catalog rows.
type Store interface {
	UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
}

// Provider processes exercise catalog CSV files.
type Provider struct {
	store Store
	log   *slog.Logger
}

// NewProvider creates a new catalog ingest provider.
func NewProvider(store Store, log *slog.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Ingest parses a catalog CSV and upserts its exercises by name.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{
		ExercisesReceived: len(parsed.Exercises),
		RowsSkipped:       len(parsed.SkippedLines),
		SkippedLines:      parsed.SkippedLines,
	}
	if len(parsed.Exercises) > 0 {
		n, err := p.store.UpsertExercises(ctx, parsed.Exercises)
		if err != nil {
			return nil, fmt.Errorf("upserting exercises: %w", err)
		}
		result.ExercisesUpserted = n
	}
	if result.RowsSkipped > 0 {
		p.log.Warn("catalog rows skipped", "count", result.RowsSkipped, "lines", result.SkippedLines)
	}
	p.log.Info("catalog ingested", "received", result.ExercisesReceived, "upserted", result.ExercisesUpserted)
	return result, nil
}
