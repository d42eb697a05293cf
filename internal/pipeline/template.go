package pipeline

import (
	"fmt"
	"slices"
)

// Template names.
const (
	GoldenHour  = "golden_hour"
	Gritty      = "gritty"
	PastelMatte = "pastel_matte"
)

// templates holds the preset compositions. Order within a template matters.
var templates = map[string][]Step{
	// Warm, glowing look: richer color, gently opened shadows.
	GoldenHour: {
		{Op: OpSaturation, Value: 1.25},
		{Op: OpShadows, Value: 0.30},
		{Op: OpBrightness, Value: 1.05},
		{Op: OpSharpness, Value: 1.10},
	},
	// Desaturated, crushed shadows, hard detail.
	Gritty: {
		{Op: OpSaturation, Value: 0.70},
		{Op: OpShadows, Value: -0.60},
		{Op: OpSharpness, Value: 2.00},
		{Op: OpBrightness, Value: 0.95},
	},
	// Soft pastel matte: over-brightened with an aggressive shadow lift.
	PastelMatte: {
		{Op: OpSaturation, Value: 1.10},
		{Op: OpShadows, Value: 0.70},
		{Op: OpBrightness, Value: 1.20},
		{Op: OpSharpness, Value: 0.90},
	},
}

// TemplateNames returns the registered template names in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Template returns a copy of the named template's steps.
func Template(name string) ([]Step, error) {
	steps, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTemplate, name, TemplateNames())
	}
	return slices.Clone(steps), nil
}
