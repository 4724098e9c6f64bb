package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrMalformedEntry is returned when a ledger entry violates its own invariants.
var ErrMalformedEntry = errors.New("malformed entry")

// SelectionEntry is one logged exercise in a routine.
type SelectionEntry struct {
	ID          uuid.UUID `json:"id"`
	Routine     string    `json:"routine"`
	Exercise    string    `json:"exercise"`
	Sets        int       `json:"sets"`
	MinRepRange int       `json:"min_rep_range"`
	MaxRepRange int       `json:"max_rep_range"`
	RIR         *int      `json:"rir"`
	Weight      float64   `json:"weight"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the write-time invariants of an entry. Catalog membership
// of Exercise is not checked here.
func (e SelectionEntry) Validate() error {
	switch {
	case e.Routine == "":
		return fmt.Errorf("%w: routine is required", ErrMalformedEntry)
	case e.Exercise == "":
		return fmt.Errorf("%w: exercise is required", ErrMalformedEntry)
	case e.Sets <= 0:
		return fmt.Errorf("%w: sets must be positive, got %d", ErrMalformedEntry, e.Sets)
	case e.MinRepRange <= 0 || e.MaxRepRange <= 0:
		return fmt.Errorf("%w: rep range must be positive, got %d-%d", ErrMalformedEntry, e.MinRepRange, e.MaxRepRange)
	case e.MinRepRange > e.MaxRepRange:
		return fmt.Errorf("%w: min_rep_range %d exceeds max_rep_range %d", ErrMalformedEntry, e.MinRepRange, e.MaxRepRange)
	case e.RIR != nil && *e.RIR < 0:
		return fmt.Errorf("%w: rir must not be negative, got %d", ErrMalformedEntry, *e.RIR)
	case e.Weight < 0:
		return fmt.Errorf("%w: weight must not be negative, got %g", ErrMalformedEntry, e.Weight)
	}
	return nil
}
