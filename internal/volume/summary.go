package volume

import (
	"math"
	"sort"

	"github.com/meltforce/liftvolume/internal/models"
)

// Engine aggregates volume over one consistent snapshot of the catalog and
// the ledger. It holds no connection state and never mutates its inputs.
type Engine struct {
	catalog *Catalog
	entries []models.SelectionEntry
}

// NewEngine builds an engine over a snapshot.
func NewEngine(catalog *Catalog, entries []models.SelectionEntry) *Engine {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	return &Engine{catalog: catalog, entries: entries}
}

// Contributions resolves the method and computes the credits of a single
// entry. An entry whose exercise is not in the catalog yields no credits.
func (e *Engine) Contributions(entry models.SelectionEntry, m Method) ([]Contribution, error) {
	f, err := Resolve(m)
	if err != nil {
		return nil, err
	}
	ex, ok := e.catalog.Lookup(entry.Exercise)
	if !ok {
		return []Contribution{}, nil
	}
	return Contributions(entry, ex, f), nil
}

type totals struct {
	sets, reps, weight float64
}

func (t *totals) add(c Contribution) {
	t.sets += c.SetsCredit
	t.reps += c.RepsCredit
	t.weight += c.WeightCredit
}

// WeeklySummary sums every contribution of every resolved entry per muscle
// group, across all routines and all three slots. Rows are ordered by muscle
// group; values are rounded to one decimal after summation.
func (e *Engine) WeeklySummary(m Method) ([]models.MuscleGroupSummary, error) {
	f, err := Resolve(m)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[string]*totals)
	for _, entry := range e.entries {
		ex, ok := e.catalog.Lookup(entry.Exercise)
		if !ok {
			continue
		}
		for _, c := range Contributions(entry, ex, f) {
			t, ok := byGroup[c.MuscleGroup]
			if !ok {
				t = &totals{}
				byGroup[c.MuscleGroup] = t
			}
			t.add(c)
		}
	}

	out := make([]models.MuscleGroupSummary, 0, len(byGroup))
	for group, t := range byGroup {
		out = append(out, models.MuscleGroupSummary{
			MuscleGroup: group,
			TotalSets:   Round1(t.sets),
			TotalReps:   Round1(t.reps),
			TotalWeight: Round1(t.weight),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MuscleGroup < out[j].MuscleGroup })
	return out, nil
}

type sessionKey struct {
	routine, group string
}

// SessionSummary reports volume per routine. Rows exist only for muscle
// groups that are the primary of at least one resolved entry in that
// routine; a row accumulates every slot contribution to its muscle group
// from entries of the same routine. Groups reached only through secondary
// or tertiary slots within a routine get no row there. Rows are ordered by
// routine then muscle group.
func (e *Engine) SessionSummary(m Method) ([]models.SessionSummary, error) {
	f, err := Resolve(m)
	if err != nil {
		return nil, err
	}

	acc := make(map[sessionKey]*totals)
	primaries := make(map[sessionKey]bool)
	for _, entry := range e.entries {
		ex, ok := e.catalog.Lookup(entry.Exercise)
		if !ok || !ex.Usable() {
			continue
		}
		primaries[sessionKey{entry.Routine, ex.PrimaryMuscleGroup}] = true
		for _, c := range Contributions(entry, ex, f) {
			k := sessionKey{entry.Routine, c.MuscleGroup}
			t, ok := acc[k]
			if !ok {
				t = &totals{}
				acc[k] = t
			}
			t.add(c)
		}
	}

	out := make([]models.SessionSummary, 0, len(primaries))
	for k := range primaries {
		t, ok := acc[k]
		if !ok {
			continue
		}
		out = append(out, models.SessionSummary{
			Routine:     k.routine,
			MuscleGroup: k.group,
			TotalSets:   Round1(t.sets),
			TotalReps:   Round1(t.reps),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Routine != out[j].Routine {
			return out[i].Routine < out[j].Routine
		}
		return out[i].MuscleGroup < out[j].MuscleGroup
	})
	return out, nil
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
