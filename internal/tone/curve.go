package tone

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"reflect"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	"github.com/samber/lo"
)

// ErrInvalidInput is returned when the value handed to a transform is not a
// usable image.
var ErrInvalidInput = errors.New("invalid input image")

const (
	// MinAmount is the lowest shadow amount honoured; smaller values clip to it.
	MinAmount = -2.0

	// MaxAmount is the highest shadow amount honoured; larger values clip to it.
	MaxAmount = 2.0
)

// LUT maps every 8-bit input intensity to an output intensity.
//
// The array type makes the table total: there is an entry for each index
// 0..255 and every entry is a valid intensity.
type LUT [256]uint8

// Identity returns the table that leaves every intensity unchanged.
func Identity() LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(i)
	}
	return l
}

// DeriveGamma converts a shadow amount into the exponent of the power curve.
//
// The amount is clamped to [MinAmount, MaxAmount] and the result is
// 2^(-amount). A NaN amount is treated as 0.
func DeriveGamma(amount float64) float64 {
	if math.IsNaN(amount) {
		amount = 0
	}
	clamped := lo.Clamp(amount, MinAmount, MaxAmount)
	return math.Pow(2, -clamped)
}

// BuildLUT materializes the power curve x^gamma over the 8-bit domain.
//
// Each entry is trunc((i/255)^gamma * 255). gamma must be positive; the
// endpoints are then fixed at 0 and 255.
func BuildLUT(gamma float64) LUT {
	var l LUT
	for i := range l {
		normalized := float64(i) / 255.0
		mapped := math.Pow(normalized, gamma)
		l[i] = uint8(lo.Clamp(int(mapped*255), 0, 255))
	}
	return l
}

// ShadowCurve returns the lookup table for a shadow amount.
func ShadowCurve(amount float64) LUT {
	return BuildLUT(DeriveGamma(amount))
}

// Compose returns a table equivalent to applying l and then next.
func (l LUT) Compose(next LUT) LUT {
	var out LUT
	for i, v := range l {
		out[i] = next[v]
	}
	return out
}

// IsIdentity reports whether l leaves every intensity unchanged.
func (l LUT) IsIdentity() bool {
	return l == Identity()
}

// Apply remaps the red, green and blue channel of every pixel through l.
//
// The image is first flattened to opaque RGB (see Opaque), so any
// transparency is discarded. The result has the dimensions of img with its
// origin moved to (0,0), and shares no memory with it.
func (l LUT) Apply(img image.Image) (*image.RGBA, error) {
	flat, err := Opaque(img)
	if err != nil {
		return nil, err
	}
	return adjust.Apply(flat, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: l[c.R], G: l[c.G], B: l[c.B], A: 0xff}
	}), nil
}

// AdjustShadows lifts (amount > 0) or crushes (amount < 0) the dark tones of
// img while leaving pure black and pure white fixed.
//
// The amount is clipped to [MinAmount, MaxAmount]. A fresh table is derived
// on every call. The only failure is ErrInvalidInput for a nil image.
func AdjustShadows(img image.Image, amount float64) (*image.RGBA, error) {
	return ShadowCurve(amount).Apply(img)
}

// Opaque copies img into a new NRGBA image with every alpha value set to 255.
//
// Colour values are taken un-premultiplied, which is what dropping the alpha
// channel of an RGBA image yields.
func Opaque(img image.Image) (*image.NRGBA, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst, nil
}

// Validate returns ErrInvalidInput if img cannot be read as an image.
func Validate(img image.Image) error {
	if img == nil {
		return ErrInvalidInput
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("%w: nil %T", ErrInvalidInput, img)
	}
	return nil
}

// Blend returns the table for trunc(center + factor*(i - center)), clipped to
// [0,255].
//
// With center 0 this scales intensities (brightness); with the mean intensity
// of an image as center it stretches or flattens contrast around that mean.
// A factor of 1 yields the identity.
func Blend(center uint8, factor float64) LUT {
	var l LUT
	c := float64(center)
	for i := range l {
		v := c + factor*(float64(i)-c)
		l[i] = uint8(lo.Clamp(int(v), 0, 255))
	}
	return l
}
