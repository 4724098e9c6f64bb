package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftvolume/internal/ingest"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/storage"
	"github.com/meltforce/liftvolume/internal/tracker"
	"github.com/meltforce/liftvolume/internal/volume"
)

// Service is the application layer behind the handlers. *tracker.Service
// satisfies it.
type Service interface {
	WeeklySummary(ctx context.Context, m volume.Method) ([]models.MuscleGroupSummary, error)
	CachedWeeklySummary(ctx context.Context, m volume.Method) (*storage.CachedWeeklySummary, error)
	SessionSummary(ctx context.Context, m volume.Method, routine string) ([]models.SessionSummary, error)
	Contributions(ctx context.Context, id uuid.UUID, m volume.Method) ([]volume.Contribution, error)

	AddEntry(ctx context.Context, e models.SelectionEntry) (*models.SelectionEntry, error)
	RemoveEntry(ctx context.Context, id uuid.UUID) error
	RemoveExercise(ctx context.Context, routine, exercise string) (int64, error)
	Entries(ctx context.Context) ([]models.SelectionEntry, error)
	Routines(ctx context.Context) ([]string, error)

	Exercise(ctx context.Context, name string) (*models.Exercise, error)
	Exercises(ctx context.Context) ([]models.Exercise, error)
	FilterExercises(ctx context.Context, f models.ExerciseFilter) ([]string, error)
	FilterOptions(ctx context.Context) (map[string][]string, error)
	MuscleGroupCounts(ctx context.Context) ([]models.MuscleGroupCount, error)
}

var _ Service = (*tracker.Service)(nil)

// CatalogIngester loads exercise catalog CSV files.
type CatalogIngester interface {
	Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc     Service
	catalog CatalogIngester
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(svc Service, catalog CatalogIngester, log *slog.Logger) *Server {
	s := &Server{
		svc:     svc,
		catalog: catalog,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/exercises", s.handleFilterExercises)
		r.Get("/exercises/options", s.handleFilterOptions)
		r.Get("/exercises/{name}", s.handleGetExercise)
		r.Get("/muscle-groups", s.handleMuscleGroups)
		r.Get("/catalog", s.handleCatalog)
		r.Post("/catalog/import", s.handleCatalogImport)

		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleAddEntry)
		r.Delete("/entries", s.handleRemoveExercise)
		r.Delete("/entries/{id}", s.handleRemoveEntry)
		r.Get("/entries/{id}/contributions", s.handleContributions)
		r.Get("/routines", s.handleRoutines)

		r.Get("/summary/weekly", s.handleWeeklySummary)
		r.Get("/summary/weekly/cached", s.handleCachedWeeklySummary)
		r.Get("/summary/session", s.handleSessionSummary)

		r.Get("/export/summary.xlsx", s.handleExportSummary)
		r.Get("/export/plan.csv", s.handleExportPlan)
	})
}

// SetMCP mounts an MCP streamable HTTP handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
