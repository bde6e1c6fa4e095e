package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	// Codecs for the formats a photo journal realistically holds.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
)

// DecodeImage resolves an imageContent string into pixels. An embedded
// payload (data URL) is decoded from its base64 body; any other string
// is treated as a path on disk. Both go through the same decoder, so the
// renderer handles them identically.
func DecodeImage(imageContent string) (image.Image, error) {
	if imageContent == "" {
		return nil, fmt.Errorf("empty image content")
	}

	var reader *bytes.Reader
	if strings.HasPrefix(imageContent, "data:") {
		idx := strings.Index(imageContent, ";base64,")
		if idx < 0 {
			return nil, fmt.Errorf("unsupported data URL encoding")
		}
		raw, err := base64.StdEncoding.DecodeString(imageContent[idx+len(";base64,"):])
		if err != nil {
			return nil, fmt.Errorf("decode embedded payload: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		raw, err := os.ReadFile(imageContent)
		if err != nil {
			return nil, fmt.Errorf("read image file: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ScaleFactor fits a w×h source into a maxW×maxH area preserving aspect
// ratio. The factor is capped at 1: an image smaller than its area is
// shown at natural size, never stretched.
func ScaleFactor(w, h, maxW, maxH int) float64 {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale > 1 {
		scale = 1
	}
	return scale
}

// CellSize reports the natural size of an image in canvas cells. One
// cell holds one pixel column and two pixel rows, since cells are drawn
// as upper-half blocks with independent top and bottom colors.
func CellSize(img image.Image) (w, h int) {
	b := img.Bounds()
	return b.Dx(), (b.Dy() + 1) / 2
}

// DrawImage blits img into the cell rectangle at (x, y) sized w×h cells,
// sampling nearest-neighbor. Each cell becomes a '▀' whose foreground is
// the top pixel and background the bottom pixel.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	pxW, pxH := b.Dx(), b.Dy()

	sample := func(px, py int) lipgloss.Color {
		if py >= pxH {
			py = pxH - 1
		}
		r, g, bl, _ := img.At(b.Min.X+px, b.Min.Y+py).RGBA()
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8))
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			px := col * pxW / w
			top := sample(px, (row*2)*pxH/(h*2))
			bottom := sample(px, (row*2+1)*pxH/(h*2))
			c.Set(x+col, y+row, '▀', top, bottom)
		}
	}
}
