package pipeline

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// createTestImage creates an opaque image with a horizontal gray ramp in the
// top half and a solid color in the bottom half.
func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y < height/2 {
				v := uint8(255 * x / (width - 1))
				img.Set(x, y, color.RGBA{v, v, v, 255})
			} else {
				img.Set(x, y, color.RGBA{220, 30, 30, 255})
			}
		}
	}
	return img
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want Step
	}{
		{"shadows=0.7", Step{Op: OpShadows, Value: 0.7}},
		{"brightness=1.2", Step{Op: OpBrightness, Value: 1.2}},
		{" Saturation = 1.1 ", Step{Op: OpSaturation, Value: 1.1}},
		{"shadows=-1.5", Step{Op: OpShadows, Value: -1.5}},
		{"gamma=2", Step{Op: OpGamma, Value: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStep(tt.in)
			if err != nil {
				t.Fatalf("ParseStep failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStep(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseStep_Errors(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		unknownOp bool
	}{
		{"missing equals", "shadows", false},
		{"unknown op", "vignette=0.5", true},
		{"bad number", "contrast=lots", false},
		{"empty value", "sharpness=", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStep(tt.in)
			if err == nil {
				t.Fatalf("ParseStep(%q) should fail", tt.in)
			}
			if errors.Is(err, ErrUnknownOp) != tt.unknownOp {
				t.Errorf("errors.Is(err, ErrUnknownOp) = %v, want %v (err: %v)", !tt.unknownOp, tt.unknownOp, err)
			}
		})
	}
}

func TestStep_StringRoundTrip(t *testing.T) {
	for _, s := range []Step{
		{Op: OpShadows, Value: 0.7},
		{Op: OpContrast, Value: 1.35},
		{Op: OpGamma, Value: 0.1},
	} {
		got, err := ParseStep(s.String())
		if err != nil {
			t.Fatalf("ParseStep(%q) failed: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("round trip of %v gave %v", s, got)
		}
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps([]string{"saturation=1.1", "shadows=0.7"})
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}
	want := []Step{{Op: OpSaturation, Value: 1.1}, {Op: OpShadows, Value: 0.7}}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Errorf("ParseSteps mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseSteps([]string{"saturation=1.1", "blur=3"}); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("error: got %v, want ErrUnknownOp", err)
	}
}

func TestStep_NeutralValueIsIdentity(t *testing.T) {
	src := createTestImage(16, 8)

	for _, op := range Ops() {
		t.Run(string(op), func(t *testing.T) {
			got, err := Step{Op: op, Value: op.Neutral()}.Apply(src)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			for y := 0; y < 8; y++ {
				for x := 0; x < 16; x++ {
					r1, g1, b1, _ := src.At(x, y).RGBA()
					r2, g2, b2, _ := got.At(x, y).RGBA()
					if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
						t.Fatalf("pixel (%d,%d) changed", x, y)
					}
				}
			}
		})
	}
}

func TestStep_ApplyUnknownOp(t *testing.T) {
	_, err := Step{Op: "posterize", Value: 4}.Apply(createTestImage(4, 4))
	if !errors.Is(err, ErrUnknownOp) {
		t.Errorf("error: got %v, want ErrUnknownOp", err)
	}
}
