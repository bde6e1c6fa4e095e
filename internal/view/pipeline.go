// Package view projects the memory collection into the visible subset.
// Everything here is a pure function over a store snapshot; transient UI
// state (search text, date cutoff) comes in as arguments.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/jeanpaul/memoria/internal/store"
)

// Query is the transient filter state applied to the collection.
type Query struct {
	// Search is matched case-insensitively against the comment. Empty
	// matches everything.
	Search string
	// Cutoff is an optional YYYY-MM-DD date; when set, only memories on
	// or before that calendar day pass.
	Cutoff string
}

// EmptyState tells the renderer which placeholder message to show.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyNoMemories
	EmptyNoMatches
)

const (
	MsgNoMemories = "You have no memories yet. Add one!"
	MsgNoMatches  = "No memories match the current filters."
)

// normalizeDate pins a YYYY-MM-DD string to midnight UTC so that the
// comparison is calendar-day-only, independent of the viewer's timezone.
func normalizeDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Visible filters and sorts a collection snapshot. A record must pass
// both the text and the date filter; the result is ordered most recent
// first. Ties on equal dates break by id ascending, and records whose
// date does not parse sort after all dated ones — both choices are
// deterministic so re-renders never shuffle rows.
func Visible(memories []store.Memory, q Query) []store.Memory {
	search := strings.ToLower(q.Search)
	cutoff, hasCutoff := time.Time{}, false
	if q.Cutoff != "" {
		// An unparsable cutoff fails every comparison, so nothing passes.
		cutoff, _ = normalizeDate(q.Cutoff)
		hasCutoff = true
	}

	visible := make([]store.Memory, 0, len(memories))
	for _, m := range memories {
		if !strings.Contains(strings.ToLower(m.Comment), search) {
			continue
		}
		if hasCutoff {
			d, ok := normalizeDate(m.Date)
			if !ok || cutoff.IsZero() || d.After(cutoff) {
				continue
			}
		}
		visible = append(visible, m)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		di, iok := normalizeDate(visible[i].Date)
		dj, jok := normalizeDate(visible[j].Date)
		if iok != jok {
			return iok // dated records before undated ones
		}
		if iok && !di.Equal(dj) {
			return di.After(dj)
		}
		return visible[i].ID < visible[j].ID
	})

	return visible
}

// Empty implements the empty-state policy: an empty collection beats an
// empty filter result.
func Empty(total, visible int) EmptyState {
	switch {
	case total == 0:
		return EmptyNoMemories
	case visible == 0:
		return EmptyNoMatches
	default:
		return EmptyNone
	}
}

// Resolve re-resolves a selected id against the visible subset. The
// selection is a weak reference: if the record was deleted or filtered
// out, the detail view falls back to its empty state.
func Resolve(visible []store.Memory, id string) (store.Memory, bool) {
	if id == "" {
		return store.Memory{}, false
	}
	for _, m := range visible {
		if m.ID == id {
			return m, true
		}
	}
	return store.Memory{}, false
}
