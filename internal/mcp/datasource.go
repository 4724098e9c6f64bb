package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/tracker"
	"github.com/meltforce/liftvolume/internal/volume"
)

// DataSource abstracts the data layer for MCP tools. Both *tracker.Service
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	WeeklySummary(ctx context.Context, m volume.Method) ([]models.MuscleGroupSummary, error)
	SessionSummary(ctx context.Context, m volume.Method, routine string) ([]models.SessionSummary, error)
	Contributions(ctx context.Context, id uuid.UUID, m volume.Method) ([]volume.Contribution, error)
	FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error)
	Entries(ctx context.Context) ([]models.SelectionEntry, error)
	Exercises(ctx context.Context) ([]models.Exercise, error)
}

// Compile-time check: *tracker.Service satisfies DataSource.
var _ DataSource = (*tracker.Service)(nil)
