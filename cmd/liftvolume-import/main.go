package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/liftvolume/internal/config"
	"github.com/meltforce/liftvolume/internal/importer"
	"github.com/meltforce/liftvolume/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("path", "", "path to the legacy SQLite database (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftvolume-import -config config.yaml -path database.db [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*dbPath)
	if err != nil || info.IsDir() {
		log.Error("legacy database does not exist or is a directory", "path", *dbPath)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	}

	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	imp := importer.New(db, log, *dryRun)
	stats, err := imp.Import(ctx, *dbPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"exercises_read", stats.ExercisesRead,
		"exercises_upserted", stats.ExercisesUpserted,
		"exercises_skipped", stats.ExercisesSkipped,
		"entries_read", stats.EntriesRead,
		"entries_inserted", stats.EntriesInserted,
		"entries_malformed", stats.EntriesMalformed,
		"entries_duplicated", stats.EntriesDuplicated,
	)
}
