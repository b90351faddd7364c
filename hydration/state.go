package hydration

import (
	"fmt"
	"math"

	"github.com/lixenwraith/hydrate/constants"
)

const emptyEpsilon = 1e-9

// State is the single hydration record owned by the widget root
// Mutated only on the UI thread, through the driver and input actions
type State struct {
	FillPercent     float64
	DurationMinutes int
	Variant         BodyVariant
	Channels        ChannelSet
}

// Defaults returns the state restored by reset all
func Defaults() State {
	return State{
		FillPercent:     constants.FullPercent,
		DurationMinutes: constants.DefaultDurationMinutes,
		Variant:         VariantGeneric,
	}
}

// Reset restores every default
func (s *State) Reset() {
	*s = Defaults()
}

// Refill sets the fill back to full
func (s *State) Refill() {
	s.FillPercent = constants.FullPercent
}

// Empty reports whether the fill has reached the floor
func (s *State) Empty() bool {
	return s.FillPercent <= constants.EmptyPercent
}

// Deplete subtracts step from the fill, clamping at zero
// Returns true when the fill is (now) empty
func (s *State) Deplete(step float64) bool {
	if step < 0 || math.IsNaN(step) {
		step = 0
	}
	next := s.FillPercent - step
	// Residue below epsilon counts as empty
	if next < emptyEpsilon {
		next = constants.EmptyPercent
	}
	s.FillPercent = ClampPercent(next)
	return s.Empty()
}

// SetDuration validates, clamps and snaps m to the slider grid before storing it
func (s *State) SetDuration(m int) (int, error) {
	d, err := NormalizeDuration(m)
	if err != nil {
		return s.DurationMinutes, err
	}
	s.DurationMinutes = d
	return d, nil
}

// NormalizeDuration rejects non-positive values and maps the rest onto the slider
func NormalizeDuration(m int) (int, error) {
	if m <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDuration, m)
	}
	if m < constants.MinDurationMinutes {
		m = constants.MinDurationMinutes
	}
	if m > constants.MaxDurationMinutes {
		m = constants.MaxDurationMinutes
	}
	offset := m - constants.MinDurationMinutes
	steps := (offset + constants.DurationStepMinutes/2) / constants.DurationStepMinutes
	return constants.MinDurationMinutes + steps*constants.DurationStepMinutes, nil
}

// ClampPercent bounds p to [0,100]; NaN maps to 0
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < constants.EmptyPercent:
		return constants.EmptyPercent
	case p > constants.FullPercent:
		return constants.FullPercent
	}
	return p
}
