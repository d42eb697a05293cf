package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/ossimg/internal/tone"
)

func TestToneStats_Uniform(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{100, 100, 100, 255})

	stats, err := ToneStats(img)
	if err != nil {
		t.Fatalf("ToneStats failed: %v", err)
	}

	if stats.Width != 10 || stats.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", stats.Width, stats.Height)
	}
	if stats.Histogram[100] != 100 {
		t.Errorf("Histogram[100]: got %d, want 100", stats.Histogram[100])
	}
	if stats.MeanLuma != 100 {
		t.Errorf("MeanLuma: got %v, want 100", stats.MeanLuma)
	}
	if stats.EdgeEnergy != 0 {
		t.Errorf("EdgeEnergy: got %v, want 0 for a flat image", stats.EdgeEnergy)
	}
	if stats.ShadowFraction != 0 || stats.HighlightFraction != 0 {
		t.Errorf("fractions: got shadow=%v highlight=%v, want 0 and 0",
			stats.ShadowFraction, stats.HighlightFraction)
	}
}

func TestToneStats_Fractions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{30, 30, 30, 255})
	img.Set(2, 0, color.RGBA{128, 128, 128, 255})
	img.Set(3, 0, color.RGBA{255, 255, 255, 255})

	stats, err := ToneStats(img)
	if err != nil {
		t.Fatalf("ToneStats failed: %v", err)
	}

	if stats.ShadowFraction != 0.5 {
		t.Errorf("ShadowFraction: got %v, want 0.5", stats.ShadowFraction)
	}
	if stats.HighlightFraction != 0.25 {
		t.Errorf("HighlightFraction: got %v, want 0.25", stats.HighlightFraction)
	}
	if stats.ClippedBlack != 0.25 || stats.ClippedWhite != 0.25 {
		t.Errorf("clipped: got black=%v white=%v, want 0.25 and 0.25", stats.ClippedBlack, stats.ClippedWhite)
	}
	if stats.EdgeEnergy <= 0 {
		t.Error("EdgeEnergy should be positive for a ramp")
	}
}

func TestToneStats_ShadowLiftKeepsClipping(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		img.Set(x, 0, color.RGBA{uint8(x), uint8(x), uint8(x), 255})
	}

	lifted, err := tone.AdjustShadows(img, 1)
	if err != nil {
		t.Fatalf("AdjustShadows failed: %v", err)
	}

	cmp, err := CompareTone(img, lifted)
	if err != nil {
		t.Fatalf("CompareTone failed: %v", err)
	}

	if cmp.MeanLumaDelta <= 0 {
		t.Errorf("MeanLumaDelta: got %v, want positive", cmp.MeanLumaDelta)
	}
	if cmp.After.ShadowFraction >= cmp.Before.ShadowFraction {
		t.Errorf("ShadowFraction should drop: before %v, after %v",
			cmp.Before.ShadowFraction, cmp.After.ShadowFraction)
	}
	if cmp.After.ClippedBlack != cmp.Before.ClippedBlack || cmp.After.ClippedWhite != cmp.Before.ClippedWhite {
		t.Error("pinned endpoints should keep the clipped fractions unchanged")
	}
	if cmp.After.MeanLightness <= cmp.Before.MeanLightness {
		t.Errorf("MeanLightness should rise: before %v, after %v",
			cmp.Before.MeanLightness, cmp.After.MeanLightness)
	}
}

func TestToneStats_SharpeningRaisesEdgeEnergy(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(60)
			if x >= 8 {
				v = 180
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	sharp, err := AdjustSharpness(img, 3)
	if err != nil {
		t.Fatalf("AdjustSharpness failed: %v", err)
	}

	cmp, err := CompareTone(img, sharp)
	if err != nil {
		t.Fatalf("CompareTone failed: %v", err)
	}
	if cmp.EdgeEnergyDelta <= 0 {
		t.Errorf("EdgeEnergyDelta: got %v, want positive", cmp.EdgeEnergyDelta)
	}
}

func TestToneStats_Empty(t *testing.T) {
	stats, err := ToneStats(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if err != nil {
		t.Fatalf("ToneStats failed: %v", err)
	}
	if stats.MeanLuma != 0 || stats.EdgeEnergy != 0 {
		t.Errorf("empty image should report zeros, got %+v", stats)
	}
}

func TestToneStats_NilImage(t *testing.T) {
	if _, err := ToneStats(nil); !errors.Is(err, tone.ErrInvalidInput) {
		t.Errorf("error: got %v, want tone.ErrInvalidInput", err)
	}
}
