// Package tone implements the tone-curve engine used for shadow adjustment.
//
// A tone curve is a remapping of the 8-bit intensity domain [0,255] onto
// itself. The engine materializes the curve as a 256-entry lookup table (LUT)
// and applies the same table independently to the red, green and blue channel
// of every pixel. Deriving the table and sweeping it over an image are kept
// separate so that the numeric part can be tested without constructing images.
//
// # Shadow Curve
//
// The shadow curve is a power law driven by a single scalar amount:
//
//	gamma  = 2^(-clamp(amount, -2, 2))
//	LUT[i] = trunc((i/255)^gamma * 255)
//
// Positive amounts give gamma < 1 and lift dark tones; negative amounts give
// gamma > 1 and crush them; zero is the identity. Amounts outside [-2, 2] are
// clipped to the nearest bound rather than rejected. The curve is pinned at
// both ends: LUT[0] is always 0 and LUT[255] is always 255, so pure black and
// pure white survive any amount.
//
// Conversion back to an integer truncates instead of rounding. This keeps the
// output bit-compatible with earlier versions of the tool at the cost of a
// downward bias of at most one level.
//
// # Thread Safety
//
// Every function in this package is pure. Each call allocates its own table
// and output image, so calls on independent images may run concurrently
// without coordination.
package tone
