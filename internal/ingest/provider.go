package ingest

// Result holds the outcome of a catalog ingest.
type Result struct {
	ExercisesReceived int   `json:"exercises_received"`
	ExercisesUpserted int64 `json:"exercises_upserted"`
	RowsSkipped       int   `json:"rows_skipped"`

	// SkippedLines holds the 1-based CSV line numbers of skipped rows.
	SkippedLines []int `json:"skipped_lines,omitempty"`

	Message string `json:"message,omitempty"`
}
