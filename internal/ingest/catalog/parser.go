package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meltforce/liftvolume/internal/models"
)

// headerAliases maps accepted header spellings (lower-cased, trimmed) to
// catalog columns. The older exercise sheets used "Main"/"Sub" naming.
var headerAliases = map[string]string{
	"exercise_name":          "exercise_name",
	"exercise name":          "exercise_name",
	"name":                   "exercise_name",
	"primary_muscle_group":   "primary_muscle_group",
	"main muscle group":      "primary_muscle_group",
	"main_muscle_group":      "primary_muscle_group",
	"secondary_muscle_group": "secondary_muscle_group",
	"sub muscle group":       "secondary_muscle_group",
	"sub_muscle_group":       "secondary_muscle_group",
	"tertiary_muscle_group":  "tertiary_muscle_group",
	"force":                  "force",
	"equipment":              "equipment",
	"mechanic":               "mechanic",
	"difficulty":             "difficulty",
}

// CanonicalColumn maps a header or column name to its catalog column.
func CanonicalColumn(name string) (string, bool) {
	col, ok := headerAliases[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))]
	return col, ok
}

// ParseResult is the parsed catalog plus the rows that could not be used.
type ParseResult struct {
	Exercises    []models.Exercise
	SkippedLines []int
}

// Parse reads an exercise catalog CSV. The first row must be a header naming
// at least the exercise name and primary muscle group columns. Unknown
// columns are ignored. Rows missing a name or primary muscle group are
// skipped and reported by line number.
func Parse(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty catalog CSV")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if col, ok := CanonicalColumn(h); ok {
			if _, dup := cols[col]; !dup {
				cols[col] = i
			}
		}
	}
	for _, required := range []string{"exercise_name", "primary_muscle_group"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	res := &ParseResult{Exercises: []models.Exercise{}}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		field := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		ex := models.Exercise{
			Name:                 field("exercise_name"),
			PrimaryMuscleGroup:   field("primary_muscle_group"),
			SecondaryMuscleGroup: models.StringPtr(field("secondary_muscle_group")),
			TertiaryMuscleGroup:  models.StringPtr(field("tertiary_muscle_group")),
			Force:                models.StringPtr(field("force")),
			Equipment:            models.StringPtr(field("equipment")),
			Mechanic:             models.StringPtr(field("mechanic")),
			Difficulty:           models.StringPtr(field("difficulty")),
		}
		if !ex.Usable() {
			res.SkippedLines = append(res.SkippedLines, line)
			continue
		}
		res.Exercises = append(res.Exercises, ex)
	}
	return res, nil
}
