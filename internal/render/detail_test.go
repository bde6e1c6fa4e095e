package render

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/memoria/internal/store"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

// imageExtent counts cells that hold image half-blocks.
func imageExtent(c *Canvas) (cols, rows int) {
	colSet := map[int]bool{}
	rowSet := map[int]bool{}
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.runeAt(x, y) == '▀' {
				colSet[x] = true
				rowSet[y] = true
			}
		}
	}
	return len(colSet), len(rowSet)
}

func canvasText(c *Canvas) string {
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		sb.WriteString(c.rowText(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestEmptyStateDrawsPlaceholder(t *testing.T) {
	c := NewCanvas(60, 20, ColorBackground)
	NewDetail(0.7).Draw(c, StateEmpty, store.Memory{}, nil)

	text := canvasText(c)
	assert.Contains(t, text, "Select a memory in the list")
	assert.Contains(t, text, "to see its detail.")
}

func TestLoadingStateLeavesCanvasBlank(t *testing.T) {
	c := NewCanvas(60, 20, ColorBackground)
	NewDetail(0.7).Draw(c, StateLoading, store.Memory{}, nil)
	assert.Equal(t, strings.TrimRight(canvasText(c), "\n"), strings.TrimRight(strings.Repeat(strings.Repeat(" ", 60)+"\n", 20), "\n"))
}

func TestRenderedComposesImageAndText(t *testing.T) {
	c := NewCanvas(60, 24, ColorBackground)
	mem := store.Memory{Date: "2024-03-01", Comment: "a day at the beach"}
	// 20x10 px image: 20x5 cells natural, well inside the budget.
	NewDetail(0.7).Draw(c, StateRendered, mem, testImage(20, 10))

	cols, rows := imageExtent(c)
	assert.Equal(t, 20, cols, "small image keeps natural width")
	assert.Equal(t, 5, rows, "small image keeps natural height")

	text := canvasText(c)
	assert.Contains(t, text, "2024-03-01")
	assert.Contains(t, text, "a day at the beach")
	assert.Contains(t, text, "───")
}

func TestRenderedNeverUpscales(t *testing.T) {
	c := NewCanvas(80, 40, ColorBackground)
	// 4x4 px → 4x2 cells; the area is far larger, the image must not grow.
	NewDetail(0.7).Draw(c, StateRendered, store.Memory{Date: "2024-01-01", Comment: "x"}, testImage(4, 4))

	cols, rows := imageExtent(c)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, rows)
}

func TestRenderedShrinksOversizedImage(t *testing.T) {
	c := NewCanvas(40, 20, ColorBackground)
	d := NewDetail(0.7)
	// 400x400 px → 400x200 cells natural; must shrink into 36x14.
	d.Draw(c, StateRendered, store.Memory{Date: "2024-01-01", Comment: "x"}, testImage(400, 400))

	cols, rows := imageExtent(c)
	require.Greater(t, cols, 0)
	assert.LessOrEqual(t, cols, 40-2*imageSideGap)
	assert.LessOrEqual(t, rows, int(float64(20)*0.7))
}

func TestImageErrorStateDrawsMessageAndTextBlock(t *testing.T) {
	c := NewCanvas(60, 20, ColorBackground)
	mem := store.Memory{Date: "2024-02-02", Comment: "still readable"}
	NewDetail(0.7).Draw(c, StateImageError, mem, nil)

	text := canvasText(c)
	assert.Contains(t, text, "Could not load the image!")
	assert.Contains(t, text, "2024-02-02")
	assert.Contains(t, text, "still readable")
	assert.Equal(t, "Could not load the image!", strings.TrimSpace(c.rowText(errorMsgRow)))
	assert.Equal(t, "2024-02-02", strings.TrimSpace(c.rowText(errorBlockRow)))
}

func TestDetailHeightRatioFallback(t *testing.T) {
	assert.Equal(t, 0.7, NewDetail(0).HeightRatio)
	assert.Equal(t, 0.7, NewDetail(2.5).HeightRatio)
	assert.Equal(t, 0.5, NewDetail(0.5).HeightRatio)
}
