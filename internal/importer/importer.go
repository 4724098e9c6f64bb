// Package importer copies the catalog and ledger of a legacy SQLite
// workout-planner database into the liftvolume store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/storage"
)

// Store is the subset of persistence the importer writes to.
type Store interface {
	UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
	InsertSelection(ctx context.Context, e models.SelectionEntry) (*models.SelectionEntry, error)
}

// Stats tracks import progress.
type Stats struct {
	ExercisesRead     int
	ExercisesUpserted int64
	ExercisesSkipped  int

	EntriesRead       int
	EntriesInserted   int
	EntriesMalformed  int
	EntriesDuplicated int
}

// Importer reads a legacy database and writes it to the store.
type Importer struct {
	store  Store
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(store Store, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, log: log, dryRun: dryRun}
}

// Import copies the catalog first, then the ledger, so that imported entries
// resolve against the imported exercises.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	legacy, err := openLegacy(path)
	if err != nil {
		return &imp.stats, err
	}
	defer legacy.Close()

	if ok, err := legacy.hasTable(ctx, "exercises"); err != nil {
		return &imp.stats, err
	} else if ok {
		if err := imp.importExercises(ctx, legacy); err != nil {
			return &imp.stats, fmt.Errorf("importing exercises: %w", err)
		}
	} else {
		imp.log.Info("no exercises table, skipping catalog")
	}

	if ok, err := legacy.hasTable(ctx, "user_selection"); err != nil {
		return &imp.stats, err
	} else if ok {
		if err := imp.importSelections(ctx, legacy); err != nil {
			return &imp.stats, fmt.Errorf("importing selections: %w", err)
		}
	} else {
		imp.log.Info("no user_selection table, skipping ledger")
	}

	return &imp.stats, nil
}

func (imp *Importer) importExercises(ctx context.Context, legacy *legacyDB) error {
	exercises, skipped, err := legacy.readExercises(ctx)
	if err != nil {
		return err
	}
	imp.stats.ExercisesRead = len(exercises) + skipped
	imp.stats.ExercisesSkipped = skipped

	if imp.dryRun || len(exercises) == 0 {
		imp.stats.ExercisesUpserted = int64(len(exercises))
		return nil
	}
	n, err := imp.store.UpsertExercises(ctx, exercises)
	if err != nil {
		return err
	}
	imp.stats.ExercisesUpserted = n
	imp.log.Info("catalog imported", "exercises", n, "skipped", skipped)
	return nil
}

func (imp *Importer) importSelections(ctx context.Context, legacy *legacyDB) error {
	entries, err := legacy.readSelections(ctx)
	if err != nil {
		return err
	}
	imp.stats.EntriesRead = len(entries)

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			imp.log.Warn("skipping malformed entry", "routine", e.Routine, "exercise", e.Exercise, "error", err)
			imp.stats.EntriesMalformed++
			continue
		}
		if imp.dryRun {
			imp.stats.EntriesInserted++
			continue
		}
		if _, err := imp.store.InsertSelection(ctx, e); err != nil {
			if errors.Is(err, storage.ErrDuplicateEntry) {
				imp.stats.EntriesDuplicated++
				continue
			}
			return fmt.Errorf("inserting %s/%s: %w", e.Routine, e.Exercise, err)
		}
		imp.stats.EntriesInserted++
	}
	imp.log.Info("ledger imported",
		"inserted", imp.stats.EntriesInserted,
		"malformed", imp.stats.EntriesMalformed,
		"duplicated", imp.stats.EntriesDuplicated,
	)
	return nil
}
