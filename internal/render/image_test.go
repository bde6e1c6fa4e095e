package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes encodes a solid-color test image.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURL(t *testing.T, raw []byte) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestDecodeEmbeddedPayload(t *testing.T) {
	img, err := DecodeImage(dataURL(t, pngBytes(t, 8, 6)))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestDecodeExternalReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 4, 4), 0644))

	img, err := DecodeImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"missing file", filepath.Join(t.TempDir(), "nope.png")},
		{"bad base64", "data:image/png;base64,!!!not base64!!!"},
		{"data URL without base64 marker", "data:image/png,plain"},
		{"garbage bytes", dataURL(t, []byte("not an image at all"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeImage(tt.content)
			assert.Error(t, err)
		})
	}
}

func TestScaleFactorShrinksToFit(t *testing.T) {
	// 200x100 into 100x100 → limited by width.
	assert.InDelta(t, 0.5, ScaleFactor(200, 100, 100, 100), 1e-9)
	// 100x200 into 100x100 → limited by height.
	assert.InDelta(t, 0.5, ScaleFactor(100, 200, 100, 100), 1e-9)
}

func TestScaleFactorNeverUpscales(t *testing.T) {
	assert.Equal(t, 1.0, ScaleFactor(30, 20, 100, 100))
	assert.Equal(t, 1.0, ScaleFactor(100, 100, 100, 100))
}

func TestScaleFactorDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, ScaleFactor(0, 10, 50, 50))
	assert.Equal(t, 0.0, ScaleFactor(10, 10, 0, 50))
}

func TestCellSizeHalvesRows(t *testing.T) {
	w, h := CellSize(image.NewRGBA(image.Rect(0, 0, 10, 7)))
	assert.Equal(t, 10, w)
	assert.Equal(t, 4, h) // 7 pixel rows round up to 4 cell rows
}
