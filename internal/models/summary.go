package models

// MuscleGroupSummary is the weekly volume for one muscle group.
type MuscleGroupSummary struct {
	MuscleGroup string  `json:"muscle_group"`
	TotalSets   float64 `json:"total_sets"`
	TotalReps   float64 `json:"total_reps"`
	TotalWeight float64 `json:"total_weight"`
}

// SessionSummary is the volume for one primary muscle group within a routine.
type SessionSummary struct {
	Routine     string  `json:"routine"`
	MuscleGroup string  `json:"muscle_group"`
	TotalSets   float64 `json:"total_sets"`
	TotalReps   float64 `json:"total_reps"`
}
