package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/ossimg/internal/tone"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// HSL is often more intuitive for color manipulation than RGB:
//   - Hue represents the color type (red, green, blue, etc.)
//   - Saturation represents color intensity (gray to vivid)
//   - Lightness represents brightness (black to white)
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// This struct provides the same color in several formats to suit different use cases:
//   - Hex: Compact string format for CSS/web usage
//   - RGB: Standard 8-bit components without alpha
//   - RGBA: 8-bit components with alpha for transparency
//   - HSL: Hue/saturation/lightness, handy for judging saturation edits
//   - Lightness: CIE L* (0-100), handy for judging tone edits
type ColorResult struct {
	Hex       string    `json:"hex"`       // Hex format "#RRGGBB" (no alpha)
	RGB       RGBColor  `json:"rgb"`       // RGB components
	RGBA      RGBAColor `json:"rgba"`      // RGBA components with alpha
	HSL       HSLColor  `json:"hsl"`       // HSL representation
	Lightness float64   `json:"lightness"` // CIE L* (0-100)
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if img is nil or coordinates are outside the image bounds.
//
// # Coordinate System
//
// Coordinates are 0-based with origin at top-left:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
//
// # Color Conversion
//
// The pixel is converted to 8-bit non-premultiplied NRGBA, so a translucent
// pixel reports the same RGB that the adjusters work on. The Hex format
// excludes alpha; use RGBA.A to get transparency information.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if err := tone.Validate(img); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	// Straight (non-premultiplied) values, as the adjusters see them.
	px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	r8, g8, b8, a8 := px.R, px.G, px.B, px.A

	c := rgb8(r8, g8, b8)
	l, _, _ := c.Lab()

	return &ColorResult{
		Hex:       fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:       RGBColor{R: r8, G: g8, B: b8},
		RGBA:      RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:       hslOf(c),
		Lightness: roundTo(l*100, 2),
	}, nil
}

// rgb8 builds a colorful.Color from 8-bit sRGB components.
func rgb8(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// hslOf converts a color to integer HSL with H in 0-360 and S, L in 0-100.
// Components are truncated, not rounded.
func hslOf(c colorful.Color) HSLColor {
	h, s, l := c.Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
