package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeanpaul/memoria/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	slot := store.NewSlot(filepath.Join(t.TempDir(), "memories.json"), zap.NewNop())
	return store.Open(slot, zap.NewNop())
}

func goodFile(name string, mtime time.Time) File {
	return File{
		Name:    name,
		ModTime: mtime,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("\x89PNG\r\n\x1a\nfake")), nil
		},
	}
}

func badFile(name string) File {
	return File{
		Name:    name,
		ModTime: time.Now(),
		Open:    func() (io.ReadCloser, error) { return nil, errors.New("device unplugged") },
	}
}

func TestEmptyBatchRejected(t *testing.T) {
	in := New(newTestStore(t), zap.NewNop())
	_, err := in.Run(nil, "", nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestBatchSkipsFailedReads(t *testing.T) {
	st := newTestStore(t)
	in := New(st, zap.NewNop())

	mtime := time.Date(2024, 3, 1, 15, 4, 5, 0, time.Local)
	files := []File{
		goodFile("one.png", mtime),
		badFile("two.png"),
		goodFile("three.png", mtime),
	}

	created, err := in.Run(files, "Holiday", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, st.Len())

	comments := []string{st.List()[0].Comment, st.List()[1].Comment}
	assert.Contains(t, comments, "Holiday (one.png)")
	assert.Contains(t, comments, "Holiday (three.png)")
}

func TestProgressReportedInOrder(t *testing.T) {
	in := New(newTestStore(t), zap.NewNop())

	var calls []string
	progress := func(done, total int) {
		calls = append(calls, fmt.Sprintf("%d/%d", done, total))
	}

	files := []File{
		goodFile("a.png", time.Now()),
		badFile("b.png"),
		goodFile("c.png", time.Now()),
	}
	created, err := in.Run(files, "", progress)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	// Progress counts successes against the full batch size.
	assert.Equal(t, []string{"1/3", "2/3"}, calls)
}

func TestRecordShape(t *testing.T) {
	st := newTestStore(t)
	in := New(st, zap.NewNop())

	mtime := time.Date(2023, 7, 4, 23, 59, 0, 0, time.Local)
	_, err := in.Run([]File{goodFile("fireworks.png", mtime)}, "", nil)
	require.NoError(t, err)

	m := st.List()[0]
	assert.Equal(t, "2023-07-04", m.Date)
	assert.Equal(t, "Memory without comment (fireworks.png)", m.Comment)
	assert.True(t, m.IsEmbedded())
	assert.True(t, strings.HasPrefix(m.ImageContent, "data:image/png;base64,"))
	assert.NotEmpty(t, m.Timestamp)
}

func TestFormatDateZeroPads(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-01-05", FormatDate(d))
}

func TestExpandGlobsSorted(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	for _, name := range []string{"b.png", "a.png", filepath.Join("nested", "c.png")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644))

	files, err := Expand([]string{filepath.Join(dir, "**", "*.png")})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, names)
}

func TestExpandLiteralPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0644))

	files, err := Expand([]string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "plain.jpg", files[0].Name)
	assert.False(t, files[0].ModTime.IsZero())
}
