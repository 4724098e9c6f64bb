package models

import "strings"

// Exercise is a catalog entry. Secondary and tertiary muscle groups are nil
// when the exercise does not train a muscle through that slot.
type Exercise struct {
	Name                 string  `json:"exercise_name"`
	PrimaryMuscleGroup   string  `json:"primary_muscle_group"`
	SecondaryMuscleGroup *string `json:"secondary_muscle_group"`
	TertiaryMuscleGroup  *string `json:"tertiary_muscle_group"`
	Force                *string `json:"force,omitempty"`
	Equipment            *string `json:"equipment,omitempty"`
	Mechanic             *string `json:"mechanic,omitempty"`
	Difficulty           *string `json:"difficulty,omitempty"`
}

// Usable reports whether the exercise can contribute volume.
func (e Exercise) Usable() bool {
	return e.Name != "" && e.PrimaryMuscleGroup != ""
}

// ExerciseFilter holds attribute constraints for catalog searches. Empty
// fields are ignored; set fields must all match exactly.
type ExerciseFilter struct {
	PrimaryMuscleGroup   string `json:"primary_muscle_group,omitempty"`
	SecondaryMuscleGroup string `json:"secondary_muscle_group,omitempty"`
	TertiaryMuscleGroup  string `json:"tertiary_muscle_group,omitempty"`
	Force                string `json:"force,omitempty"`
	Equipment            string `json:"equipment,omitempty"`
	Mechanic             string `json:"mechanic,omitempty"`
	Difficulty           string `json:"difficulty,omitempty"`
}

// FilterFields lists the filterable attributes by their column names, in
// the order used for queries and option listings.
var FilterFields = []string{
	"primary_muscle_group",
	"secondary_muscle_group",
	"tertiary_muscle_group",
	"force",
	"equipment",
	"mechanic",
	"difficulty",
}

// Set assigns a constraint by column name. Unknown names are reported as false.
func (f *ExerciseFilter) Set(field, value string) bool {
	switch field {
	case "primary_muscle_group":
		f.PrimaryMuscleGroup = value
	case "secondary_muscle_group":
		f.SecondaryMuscleGroup = value
	case "tertiary_muscle_group":
		f.TertiaryMuscleGroup = value
	case "force":
		f.Force = value
	case "equipment":
		f.Equipment = value
	case "mechanic":
		f.Mechanic = value
	case "difficulty":
		f.Difficulty = value
	default:
		return false
	}
	return true
}

// Constraints returns the non-empty constraints keyed by column name.
func (f ExerciseFilter) Constraints() map[string]string {
	all := map[string]string{
		"primary_muscle_group":   f.PrimaryMuscleGroup,
		"secondary_muscle_group": f.SecondaryMuscleGroup,
		"tertiary_muscle_group":  f.TertiaryMuscleGroup,
		"force":                  f.Force,
		"equipment":              f.Equipment,
		"mechanic":               f.Mechanic,
		"difficulty":             f.Difficulty,
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Attribute returns the value of a filterable attribute by column name.
// Absent optional attributes are returned as "".
func (e Exercise) Attribute(field string) string {
	switch field {
	case "primary_muscle_group":
		return e.PrimaryMuscleGroup
	case "secondary_muscle_group":
		return deref(e.SecondaryMuscleGroup)
	case "tertiary_muscle_group":
		return deref(e.TertiaryMuscleGroup)
	case "force":
		return deref(e.Force)
	case "equipment":
		return deref(e.Equipment)
	case "mechanic":
		return deref(e.Mechanic)
	case "difficulty":
		return deref(e.Difficulty)
	}
	return ""
}

// MuscleGroupCount is the number of catalog exercises with a given primary muscle group.
type MuscleGroupCount struct {
	MuscleGroup   string `json:"muscle_group"`
	ExerciseCount int    `json:"exercise_count"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for a blank string, otherwise a pointer to the trimmed value.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
