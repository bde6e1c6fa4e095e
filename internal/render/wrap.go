package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Measure returns the rendered width of a string in cells.
type Measure func(string) int

// DisplayWidth is the default Measure; it accounts for wide runes.
var DisplayWidth Measure = lipgloss.Width

// Wrap splits text into display lines using a greedy word wrap: words
// accumulate into the current line while its measured width stays within
// maxWidth; the word that would overflow starts the next line. The final
// accumulated line is always flushed, even when it looks empty, and a
// single word wider than maxWidth still gets a line of its own.
func Wrap(text string, maxWidth int, measure Measure) []string {
	if measure == nil {
		measure = DisplayWidth
	}

	words := strings.Split(text, " ")
	var lines []string
	line := ""
	for n, word := range words {
		test := line + word + " "
		if measure(test) > maxWidth && n > 0 {
			lines = append(lines, strings.TrimRight(line, " "))
			line = word + " "
		} else {
			line = test
		}
	}
	return append(lines, strings.TrimRight(line, " "))
}
