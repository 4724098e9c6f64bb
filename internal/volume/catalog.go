package volume

import (
	"sort"

	"github.com/meltforce/liftvolume/internal/models"
)

// Catalog is an in-memory index of exercises keyed by name.
type Catalog struct {
	byName map[string]models.Exercise
	names  []string
}

// NewCatalog indexes exercises by name. When a name repeats, the last row wins.
func NewCatalog(exercises []models.Exercise) *Catalog {
	c := &Catalog{byName: make(map[string]models.Exercise, len(exercises))}
	for _, ex := range exercises {
		if ex.Name == "" {
			continue
		}
		if _, seen := c.byName[ex.Name]; !seen {
			c.names = append(c.names, ex.Name)
		}
		c.byName[ex.Name] = ex
	}
	sort.Strings(c.names)
	return c
}

// Lookup returns the catalog row for an exercise name.
func (c *Catalog) Lookup(name string) (models.Exercise, bool) {
	ex, ok := c.byName[name]
	return ex, ok
}

// All returns every exercise ordered by name.
func (c *Catalog) All() []models.Exercise {
	out := make([]models.Exercise, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

// Len returns the number of distinct exercises.
func (c *Catalog) Len() int { return len(c.names) }

// Filter returns the distinct names of exercises matching every non-empty
// constraint by exact equality. The result is never nil.
func (c *Catalog) Filter(f models.ExerciseFilter) []string {
	constraints := f.Constraints()
	out := []string{}
	for _, n := range c.names {
		if Matches(c.byName[n], constraints) {
			out = append(out, n)
		}
	}
	return out
}

// Matches reports whether an exercise satisfies all constraints, keyed by
// column name as returned by models.ExerciseFilter.Constraints.
func Matches(ex models.Exercise, constraints map[string]string) bool {
	for field, want := range constraints {
		if ex.Attribute(field) != want {
			return false
		}
	}
	return true
}
