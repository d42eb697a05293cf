package pipeline

import (
	"fmt"
	"math"
)

// Accepted ranges for ManualEdit parameters.
const (
	MinManualBrightness = 0.0
	MaxManualBrightness = 3.0
	MinManualGamma      = 0.1
	MaxManualGamma      = 5.0
)

// ManualEdit returns the manual edit sequence: brightness first, then gamma.
//
// Unlike the shadow amount, which is clamped silently, these values come
// straight from a user and are rejected with ErrOutOfRange when they fall
// outside [0, 3] for brightness or [0.1, 5] for gamma.
func ManualEdit(brightness, gamma float64) ([]Step, error) {
	if err := checkRange("brightness", brightness, MinManualBrightness, MaxManualBrightness); err != nil {
		return nil, err
	}
	if err := checkRange("gamma", gamma, MinManualGamma, MaxManualGamma); err != nil {
		return nil, err
	}
	return []Step{
		{Op: OpBrightness, Value: brightness},
		{Op: OpGamma, Value: gamma},
	}, nil
}

func checkRange(name string, v, min, max float64) error {
	if math.IsNaN(v) || v < min || v > max {
		return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrOutOfRange, name, min, max, v)
	}
	return nil
}
