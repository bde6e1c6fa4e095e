package tui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# memoria

A journal of dated, image-bearing memories, kept entirely on this
machine.

## Browsing

| Key | Action |
|-----|--------|
| ` + "`↑` / `↓`" + ` | move through the list; the detail pane follows |
| ` + "`/`" + ` | filter by comment text (case-insensitive) |
| ` + "`c`" + ` | show only memories on or before a date (YYYY-MM-DD) |
| ` + "`r`" + ` | reload the journal from disk |

## Editing

| Key | Action |
|-----|--------|
| ` + "`a`" + ` | add memories from image files (glob patterns work) |
| ` + "`e`" + ` | edit the selected memory |
| ` + "`d`" + ` | delete the selected memory (asks first) |

## Notes

- Rows tagged ` + "`[b64]`" + ` carry their image embedded in the journal
  file itself; others reference a path on disk.
- Everything is saved immediately after every change.

Press any key to return.
`

// renderHelp renders the help screen once at startup. A rendering
// failure falls back to the raw markdown rather than no help at all.
func renderHelp() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
