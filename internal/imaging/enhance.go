package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
	"github.com/samber/lo"

	"github.com/ironsheep/ossimg/internal/tone"
)

// The enhancers in this file follow the classic "enhance by interpolation"
// model: each one derives a degenerate version of the image (black, a flat
// mean gray, a grayscale copy, a smoothed copy) and interpolates between that
// degenerate image and the original:
//
//	out = degenerate + factor * (original - degenerate)
//
// A factor of 1.0 returns the original, 0.0 returns the degenerate image, and
// values above 1.0 extrapolate away from it. Results are truncated to 8 bits and
// clipped to [0,255]. Every enhancer flattens its input to opaque RGB first and
// returns a new image; the input is never modified.

// smoothKernel is the 3x3 smoothing filter used as the degenerate image for
// sharpness. It is normalized to sum 1 before use.
var smoothKernel = &convolution.Kernel{
	Matrix: []float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	},
	Width:  3,
	Height: 3,
}

// AdjustBrightness scales every channel by factor.
//
// Parameters:
//   - img: Source image. Must not be nil.
//   - factor: 1.0 keeps the image, 0.0 yields black, 2.0 doubles intensities.
//     Negative values are treated as 0.
func AdjustBrightness(img image.Image, factor float64) (*image.RGBA, error) {
	return tone.Blend(0, sanitizeFactor(factor)).Apply(img)
}

// AdjustContrast stretches (factor > 1) or flattens (factor < 1) intensities
// around the mean luma of the image.
//
// The mean is the average ITU-R BT.601 luma of all pixels, rounded to the
// nearest level. A factor of 0 yields a flat gray image at that mean.
func AdjustContrast(img image.Image, factor float64) (*image.RGBA, error) {
	flat, err := tone.Opaque(img)
	if err != nil {
		return nil, err
	}

	var sum, n float64
	for i := 0; i+2 < len(flat.Pix); i += 4 {
		sum += float64(luma(flat.Pix[i], flat.Pix[i+1], flat.Pix[i+2]))
		n++
	}
	var mean uint8
	if n > 0 {
		mean = uint8(lo.Clamp(int(sum/n+0.5), 0, 255))
	}

	return tone.Blend(mean, sanitizeFactor(factor)).Apply(flat)
}

// AdjustSaturation moves every pixel toward (factor < 1) or away from
// (factor > 1) its own grayscale value. A factor of 0 yields a grayscale image.
func AdjustSaturation(img image.Image, factor float64) (*image.RGBA, error) {
	flat, err := tone.Opaque(img)
	if err != nil {
		return nil, err
	}
	f := sanitizeFactor(factor)

	return adjust.Apply(flat, func(c color.RGBA) color.RGBA {
		l := float64(luma(c.R, c.G, c.B))
		return color.RGBA{
			R: interpolate(l, float64(c.R), f),
			G: interpolate(l, float64(c.G), f),
			B: interpolate(l, float64(c.B), f),
			A: 0xff,
		}
	}), nil
}

// AdjustSharpness blurs (factor < 1) or sharpens (factor > 1) the image.
//
// The degenerate image is a 3x3 smoothing filter. The one-pixel border is
// left untouched because the filter has no full neighbourhood there.
func AdjustSharpness(img image.Image, factor float64) (*image.RGBA, error) {
	flat, err := tone.Opaque(img)
	if err != nil {
		return nil, err
	}
	f := sanitizeFactor(factor)

	// Bias 0.5 makes the convolution round instead of truncate, so flat
	// regions come back exactly.
	smooth := convolution.Convolve(flat, smoothKernel.Normalized(), &convolution.Options{
		Bias:      0.5,
		Wrap:      false,
		KeepAlpha: true,
	})

	w, h := flat.Rect.Dx(), flat.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(dst.Pix, flat.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*dst.Stride + x*4
			for ch := 0; ch < 3; ch++ {
				dst.Pix[i+ch] = interpolate(float64(smooth.Pix[i+ch]), float64(flat.Pix[i+ch]), f)
			}
		}
	}
	return dst, nil
}

// AdjustGamma applies a power-law correction where gamma > 1 brightens and
// gamma < 1 darkens. gamma must be positive; 1.0 leaves the image unchanged.
func AdjustGamma(img image.Image, gamma float64) (*image.NRGBA, error) {
	flat, err := tone.Opaque(img)
	if err != nil {
		return nil, err
	}
	return imaging.AdjustGamma(flat, gamma), nil
}

// luma returns the ITU-R BT.601 luma of an 8-bit RGB triple using the
// 16-bit fixed-point weights common to image libraries.
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// interpolate computes trunc(from + f*(to-from)) clipped to [0,255].
func interpolate(from, to, f float64) uint8 {
	return uint8(lo.Clamp(int(from+f*(to-from)), 0, 255))
}

// sanitizeFactor maps NaN to the neutral factor and negative factors to 0.
func sanitizeFactor(f float64) float64 {
	if math.IsNaN(f) {
		return 1
	}
	return math.Max(f, 0)
}
