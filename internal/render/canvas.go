// Package render draws the memory detail view onto a character-cell
// canvas: a scaled image composed from half-block cells, a date heading,
// a separator rule and the greedily wrapped comment underneath.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r  rune
	fg lipgloss.Color
	bg lipgloss.Color
}

// Canvas is a fixed-size grid of colored cells. All drawing clips at the
// edges, so callers never need bounds checks of their own.
type Canvas struct {
	w, h  int
	back  lipgloss.Color
	cells [][]cell
}

func NewCanvas(w, h int, background lipgloss.Color) *Canvas {
	c := &Canvas{w: w, h: h, back: background}
	c.Clear()
	return c
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// Clear resets every cell to the background color.
func (c *Canvas) Clear() {
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		row := make([]cell, c.w)
		for x := range row {
			row[x] = cell{r: ' ', bg: c.back}
		}
		c.cells[y] = row
	}
}

// Set places a single cell; coordinates outside the canvas are dropped.
func (c *Canvas) Set(x, y int, r rune, fg, bg lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, fg: fg, bg: bg}
}

// Text draws a string left-to-right starting at (x, y).
func (c *Canvas) Text(x, y int, s string, fg lipgloss.Color) {
	for _, r := range s {
		c.Set(x, y, r, fg, c.back)
		x++
	}
}

// TextCentered draws a string horizontally centered on row y.
func (c *Canvas) TextCentered(y int, s string, fg lipgloss.Color) {
	c.Text((c.w-lipgloss.Width(s))/2, y, s, fg)
}

// Rule draws a horizontal separator line on row y from x1 to x2 inclusive.
func (c *Canvas) Rule(x1, x2, y int, fg lipgloss.Color) {
	for x := x1; x <= x2; x++ {
		c.Set(x, y, '─', fg, c.back)
	}
}

// String renders the grid to styled terminal lines. Adjacent cells with
// the same colors collapse into one style run to keep the output small.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		runFG, runBG := row[0].fg, row[0].bg
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Background(runBG)
			if runFG != "" {
				style = style.Foreground(runFG)
			}
			sb.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			if cl.fg != runFG || cl.bg != runBG {
				flush()
				runFG, runBG = cl.fg, cl.bg
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return sb.String()
}

// runeAt is a test hook for inspecting drawn content.
func (c *Canvas) runeAt(x, y int) rune {
	return c.cells[y][x].r
}

// rowText is a test hook returning the plain text of one row.
func (c *Canvas) rowText(y int) string {
	var sb strings.Builder
	for _, cl := range c.cells[y] {
		sb.WriteRune(cl.r)
	}
	return sb.String()
}
