// Package pipeline chains image adjustments into ordered sequences.
//
// A Step names one adjustment and its parameter. Steps run strictly in order,
// each one consuming the image produced by the previous step, and every
// intermediate image is kept as a Stage so callers can write step-by-step
// previews. Templates are fixed step lists with hard-coded parameters, and
// ManualEdit builds the brightness-then-gamma sequence from user input.
//
// # Operations
//
//   - brightness: scale intensities; 1.0 = unchanged
//   - contrast:   stretch around the mean luma; 1.0 = unchanged
//   - saturation: move away from grayscale; 1.0 = unchanged
//   - sharpness:  extrapolate away from a smoothed copy; 1.0 = unchanged
//   - gamma:      power-law correction, larger is brighter; 1.0 = unchanged
//   - shadows:    shadow curve amount in [-2, 2]; 0.0 = unchanged
//
// # Concurrency
//
// Run is pure and may be called concurrently on independent images. RunBatch
// processes independent files in parallel with a bounded worker count.
package pipeline
