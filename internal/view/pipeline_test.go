package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeanpaul/memoria/internal/store"
)

func mem(id, date, comment string) store.Memory {
	return store.Memory{ID: id, ImageContent: "x.png", Date: date, Comment: comment}
}

func ids(memories []store.Memory) []string {
	out := make([]string, len(memories))
	for i, m := range memories {
		out[i] = m.ID
	}
	return out
}

func TestTextFilter(t *testing.T) {
	coll := []store.Memory{mem("a", "2024-03-01", "Beach day")}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"no match", "mountain", 0},
		{"case insensitive", "beach", 1},
		{"empty matches all", "", 1},
		{"substring", "ach d", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Visible(coll, Query{Search: tt.search}), tt.want)
		})
	}
}

func TestDateCutoff(t *testing.T) {
	coll := []store.Memory{mem("a", "2024-03-01", "march")}

	assert.Len(t, Visible(coll, Query{Cutoff: "2024-03-01"}), 1, "cutoff on the day itself includes it")
	assert.Len(t, Visible(coll, Query{Cutoff: "2024-06-30"}), 1, "later cutoff includes it")
	assert.Len(t, Visible(coll, Query{Cutoff: "2024-02-28"}), 0, "earlier cutoff excludes it")
	assert.Len(t, Visible(coll, Query{Cutoff: ""}), 1, "no cutoff matches everything")
}

func TestUnparsableDatesFailComparisons(t *testing.T) {
	coll := []store.Memory{
		mem("bad", "not-a-date", "broken"),
		mem("good", "2024-01-01", "fine"),
	}

	// A record with an invalid date never passes a cutoff.
	assert.Equal(t, []string{"good"}, ids(Visible(coll, Query{Cutoff: "2024-12-31"})))

	// An invalid cutoff fails every comparison, so nothing passes.
	assert.Empty(t, Visible(coll, Query{Cutoff: "someday"}))

	// Without a cutoff the broken record still shows, sorted last.
	assert.Equal(t, []string{"good", "bad"}, ids(Visible(coll, Query{})))
}

func TestSortDescendingByDate(t *testing.T) {
	coll := []store.Memory{
		mem("jan", "2024-01-01", "one"),
		mem("mar", "2024-03-01", "three"),
		mem("feb", "2024-02-01", "two"),
	}

	assert.Equal(t, []string{"mar", "feb", "jan"}, ids(Visible(coll, Query{})))
}

func TestSortTieBreakIsDeterministic(t *testing.T) {
	coll := []store.Memory{
		mem("b", "2024-05-05", "tie"),
		mem("a", "2024-05-05", "tie"),
		mem("c", "2024-05-05", "tie"),
	}

	want := []string{"a", "b", "c"}
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, ids(Visible(coll, Query{})))
	}
}

func TestEmptyStatePolicy(t *testing.T) {
	assert.Equal(t, EmptyNoMemories, Empty(0, 0))
	assert.Equal(t, EmptyNoMatches, Empty(3, 0))
	assert.Equal(t, EmptyNone, Empty(3, 2))
}

func TestResolveWeakReference(t *testing.T) {
	visible := []store.Memory{mem("a", "2024-01-01", "here")}

	got, ok := Resolve(visible, "a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = Resolve(visible, "gone")
	assert.False(t, ok)

	_, ok = Resolve(visible, "")
	assert.False(t, ok)
}
