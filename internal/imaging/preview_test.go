package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/ossimg/internal/tone"
)

func TestEncodePreview(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxSize       int
		wantW, wantH  int
	}{
		{"full size", 40, 20, 0, 40, 20},
		{"already fits", 40, 20, 64, 40, 20},
		{"landscape shrinks", 200, 100, 50, 50, 25},
		{"portrait shrinks", 100, 400, 100, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(tt.width, tt.height, color.RGBA{10, 20, 30, 255})

			result, err := EncodePreview(img, tt.maxSize)
			if err != nil {
				t.Fatalf("EncodePreview failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
			if result.MimeType != "image/png" {
				t.Errorf("MimeType: got %s, want image/png", result.MimeType)
			}

			data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
			if err != nil {
				t.Fatalf("invalid base64: %v", err)
			}
			decoded, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("invalid PNG: %v", err)
			}
			if decoded.Bounds().Dx() != tt.wantW || decoded.Bounds().Dy() != tt.wantH {
				t.Errorf("decoded dimensions: got %dx%d, want %dx%d",
					decoded.Bounds().Dx(), decoded.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestEncodePreview_NilImage(t *testing.T) {
	_, err := EncodePreview((*image.NRGBA)(nil), 10)
	if !errors.Is(err, tone.ErrInvalidInput) {
		t.Errorf("error: got %v, want tone.ErrInvalidInput", err)
	}
}
