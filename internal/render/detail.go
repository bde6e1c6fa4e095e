package render

import (
	"image"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/memoria/internal/store"
)

// State is the detail view's lifecycle. Selecting a memory moves from
// Empty to Loading while the image decodes; the decode outcome lands in
// Rendered or ImageError. Clearing the selection returns to Empty.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateRendered
	StateImageError
)

// Detail view palette, lifted from the journal's dark theme.
var (
	ColorBackground  = lipgloss.Color("#111827")
	ColorPlaceholder = lipgloss.Color("#4b5563")
	ColorHeading     = lipgloss.Color("#d1d5db")
	ColorSeparator   = lipgloss.Color("#374151")
	ColorComment     = lipgloss.Color("#9ca3af")
	ColorError       = lipgloss.Color("#f87171")
)

// Layout constants, all in cells.
const (
	imageTopMargin = 1 // image anchor near the top
	imageSideGap   = 2 // horizontal margin around the image area
	headingGap     = 2 // rows between image bottom and the date heading
	ruleInset      = 2 // separator rule stops short of the edges
	commentMargin  = 3 // margin around the wrapped comment block
	lineHeight     = 1
	errorMsgRow    = 3 // error text sits near the top...
	errorBlockRow  = 5 // ...and the text block at a fixed offset below it
)

// Detail composes the selected memory onto a canvas.
type Detail struct {
	// HeightRatio is the share of canvas height budgeted for the image.
	HeightRatio float64
}

func NewDetail(heightRatio float64) Detail {
	if heightRatio <= 0 || heightRatio > 1 {
		heightRatio = 0.7
	}
	return Detail{HeightRatio: heightRatio}
}

// Draw paints the canvas for the given state. img is only consulted in
// StateRendered; mem only outside StateEmpty.
func (d Detail) Draw(c *Canvas, state State, mem store.Memory, img image.Image) {
	c.Clear()

	switch state {
	case StateEmpty:
		c.TextCentered(c.Height()/2-1, "Select a memory in the list", ColorPlaceholder)
		c.TextCentered(c.Height()/2, "to see its detail.", ColorPlaceholder)

	case StateLoading:
		// The canvas stays cleared while the decode is in flight; the
		// status line carries the spinner.

	case StateRendered:
		bottom := d.drawImage(c, img)
		d.drawTextBlock(c, mem, bottom+headingGap)

	case StateImageError:
		c.TextCentered(errorMsgRow, "Could not load the image!", ColorError)
		d.drawTextBlock(c, mem, errorBlockRow)
	}
}

// drawImage scales the image into its area (never upscaling), centers it
// horizontally, anchors it near the top, and returns the row just below
// the drawn image.
func (d Detail) drawImage(c *Canvas, img image.Image) int {
	natW, natH := CellSize(img)
	maxW := c.Width() - 2*imageSideGap
	maxH := int(float64(c.Height()) * d.HeightRatio)

	scale := ScaleFactor(natW, natH, maxW, maxH)
	if scale <= 0 {
		return imageTopMargin
	}
	drawW := int(float64(natW) * scale)
	if drawW < 1 {
		drawW = 1
	}
	drawH := int(float64(natH) * scale)
	if drawH < 1 {
		drawH = 1
	}

	c.DrawImage(img, (c.Width()-drawW)/2, imageTopMargin, drawW, drawH)
	return imageTopMargin + drawH
}

// drawTextBlock draws the date heading, the separator rule and the
// wrapped comment starting at row y.
func (d Detail) drawTextBlock(c *Canvas, mem store.Memory, y int) {
	c.TextCentered(y, mem.Date, ColorHeading)
	c.Rule(ruleInset, c.Width()-1-ruleInset, y+1, ColorSeparator)

	maxWidth := c.Width() - 2*commentMargin
	if maxWidth < 1 {
		maxWidth = 1
	}
	line := y + 2
	for _, l := range Wrap(mem.Comment, maxWidth, nil) {
		c.TextCentered(line, l, ColorComment)
		line += lineHeight
	}
}
