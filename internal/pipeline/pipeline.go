package pipeline

import (
	"fmt"
	"image"

	"github.com/ironsheep/ossimg/internal/tone"
)

// Stage records the image produced by one step.
type Stage struct {
	Step  Step
	Image image.Image
}

// Result holds the output of a pipeline run.
type Result struct {
	Final  image.Image // image after the last step
	Stages []Stage     // one entry per step, in order
}

// Run applies steps to img in order.
//
// The input image is never modified. With no steps, Final is an opaque copy of
// img. A failing step aborts the run; the error names the step's position.
func Run(img image.Image, steps []Step) (*Result, error) {
	if err := tone.Validate(img); err != nil {
		return nil, err
	}

	if len(steps) == 0 {
		flat, err := tone.Opaque(img)
		if err != nil {
			return nil, err
		}
		return &Result{Final: flat}, nil
	}

	result := &Result{Stages: make([]Stage, 0, len(steps))}
	current := img
	for i, step := range steps {
		next, err := step.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		result.Stages = append(result.Stages, Stage{Step: step, Image: next})
		current = next
	}
	result.Final = current

	return result, nil
}
