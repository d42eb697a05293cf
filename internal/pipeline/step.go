package pipeline

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/ironsheep/ossimg/internal/imaging"
	"github.com/ironsheep/ossimg/internal/tone"
)

// Op identifies an adjustment.
type Op string

// Supported adjustments.
const (
	OpBrightness Op = "brightness"
	OpContrast   Op = "contrast"
	OpSaturation Op = "saturation"
	OpSharpness  Op = "sharpness"
	OpGamma      Op = "gamma"
	OpShadows    Op = "shadows"
)

var (
	// ErrUnknownOp is returned for an adjustment name that is not supported.
	ErrUnknownOp = errors.New("unknown adjustment")

	// ErrUnknownTemplate is returned for a template name that is not registered.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrOutOfRange is returned when a user-supplied parameter falls outside
	// the range accepted by a validated sequence such as ManualEdit.
	ErrOutOfRange = errors.New("parameter out of range")
)

// Ops lists the supported adjustments in documentation order.
func Ops() []Op {
	return []Op{OpBrightness, OpContrast, OpSaturation, OpSharpness, OpGamma, OpShadows}
}

// Neutral returns the parameter value for which op leaves an image unchanged.
func (o Op) Neutral() float64 {
	if o == OpShadows {
		return 0
	}
	return 1
}

// Valid reports whether o is a supported adjustment.
func (o Op) Valid() bool {
	for _, op := range Ops() {
		if o == op {
			return true
		}
	}
	return false
}

// Step is one adjustment with its parameter.
type Step struct {
	Op    Op      `json:"op"`
	Value float64 `json:"value"`
}

// String formats the step as "op=value", the form accepted by ParseStep.
func (s Step) String() string {
	return fmt.Sprintf("%s=%s", s.Op, strconv.FormatFloat(s.Value, 'f', -1, 64))
}

// ParseStep parses "op=value", e.g. "shadows=0.7". Op names are case-insensitive.
func ParseStep(text string) (Step, error) {
	name, raw, ok := strings.Cut(text, "=")
	if !ok {
		return Step{}, fmt.Errorf("invalid step %q: expected op=value", text)
	}

	op := Op(strings.ToLower(strings.TrimSpace(name)))
	if !op.Valid() {
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownOp, name)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Step{}, fmt.Errorf("invalid value for %s: %w", op, err)
	}

	return Step{Op: op, Value: value}, nil
}

// ParseSteps parses each element with ParseStep, stopping at the first error.
func ParseSteps(texts []string) ([]Step, error) {
	steps := make([]Step, 0, len(texts))
	for _, text := range texts {
		s, err := ParseStep(text)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// Apply runs the adjustment on img and returns a new image.
func (s Step) Apply(img image.Image) (image.Image, error) {
	var (
		out image.Image
		err error
	)
	switch s.Op {
	case OpBrightness:
		out, err = imaging.AdjustBrightness(img, s.Value)
	case OpContrast:
		out, err = imaging.AdjustContrast(img, s.Value)
	case OpSaturation:
		out, err = imaging.AdjustSaturation(img, s.Value)
	case OpSharpness:
		out, err = imaging.AdjustSharpness(img, s.Value)
	case OpGamma:
		out, err = imaging.AdjustGamma(img, s.Value)
	case OpShadows:
		out, err = tone.AdjustShadows(img, s.Value)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Op, err)
	}
	return out, nil
}
