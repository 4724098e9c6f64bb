package volume

import (
	"encoding/json"
	"fmt"

	"github.com/meltforce/liftvolume/internal/models"
)

// Slot is the role a muscle group plays for an exercise.
type Slot int

const (
	SlotPrimary Slot = iota
	SlotSecondary
	SlotTertiary
)

var slotNames = [...]string{"primary", "secondary", "tertiary"}

func (s Slot) String() string {
	if s < SlotPrimary || s > SlotTertiary {
		return "unknown"
	}
	return slotNames[s]
}

// MarshalJSON encodes the slot by name.
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a slot name.
func (s *Slot) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range slotNames {
		if n == name {
			*s = Slot(i)
			return nil
		}
	}
	return fmt.Errorf("unknown slot %q", name)
}

// Contribution is the credit one ledger entry gives one muscle group slot.
type Contribution struct {
	MuscleGroup  string  `json:"muscle_group"`
	Slot         Slot    `json:"slot"`
	SetsCredit   float64 `json:"sets_credit"`
	RepsCredit   float64 `json:"reps_credit"`
	WeightCredit float64 `json:"weight_credit"`
}

// Contributions computes the slot credits of one entry against its catalog
// row. Slots whose muscle group is absent are skipped, and so are slots
// whose factor is zero: under Direct only the primary slot ever emits.
func Contributions(entry models.SelectionEntry, ex models.Exercise, f Factors) []Contribution {
	if !ex.Usable() {
		return nil
	}

	slots := [...]struct {
		slot  Slot
		group string
	}{
		{SlotPrimary, ex.PrimaryMuscleGroup},
		{SlotSecondary, groupName(ex.SecondaryMuscleGroup)},
		{SlotTertiary, groupName(ex.TertiaryMuscleGroup)},
	}

	sets := float64(entry.Sets)
	out := make([]Contribution, 0, len(slots))
	for _, s := range slots {
		factor := f.For(s.slot)
		if s.group == "" || factor == 0 {
			continue
		}
		out = append(out, Contribution{
			MuscleGroup:  s.group,
			Slot:         s.slot,
			SetsCredit:   sets * factor,
			RepsCredit:   sets * float64(entry.MaxRepRange) * factor,
			WeightCredit: sets * entry.Weight * factor,
		})
	}
	return out
}

func groupName(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
