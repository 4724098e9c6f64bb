// Package volume computes per-muscle-group training volume from a catalog
// and a ledger snapshot. Every function here is pure: callers fetch the
// snapshot and own the results.
package volume

import (
	"errors"
	"fmt"
)

// ErrInvalidMethod is returned for an unrecognized weighting method.
var ErrInvalidMethod = errors.New("invalid weighting method")

// Method selects how much credit secondary and tertiary muscle groups receive.
type Method string

const (
	Total      Method = "Total"
	Fractional Method = "Fractional"
	Direct     Method = "Direct"
)

// Methods lists the supported weighting methods.
var Methods = []Method{Total, Fractional, Direct}

// Factors is the credit multiplier applied to each muscle group slot.
type Factors struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
	Tertiary  float64 `json:"tertiary"`
}

var factorTable = map[Method]Factors{
	Total:      {Primary: 1.0, Secondary: 1.0, Tertiary: 0.33},
	Fractional: {Primary: 1.0, Secondary: 0.5, Tertiary: 0.17},
	Direct:     {Primary: 1.0, Secondary: 0.0, Tertiary: 0.0},
}

// ParseMethod converts a selector string into a Method. There is no default:
// anything other than an exact method name fails with ErrInvalidMethod.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if _, ok := factorTable[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// Resolve returns the slot factors for a method.
func Resolve(m Method) (Factors, error) {
	f, ok := factorTable[m]
	if !ok {
		return Factors{}, fmt.Errorf("%w: %q", ErrInvalidMethod, string(m))
	}
	return f, nil
}

// For returns the factor for one slot.
func (f Factors) For(s Slot) float64 {
	switch s {
	case SlotPrimary:
		return f.Primary
	case SlotSecondary:
		return f.Secondary
	case SlotTertiary:
		return f.Tertiary
	}
	return 0
}
