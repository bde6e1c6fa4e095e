// Package ingest turns batches of image files into memory records. Files
// are processed strictly sequentially — one read in flight at a time — so
// progress messages come out in file order and store mutations never
// interleave within a batch.
package ingest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/jeanpaul/memoria/internal/store"
)

// ErrEmptyBatch rejects a batch with nothing to process; the caller
// turns it into a user-facing message.
var ErrEmptyBatch = errors.New("select at least one file")

// DefaultComment seeds the comment when the user supplies no base text.
const DefaultComment = "Memory without comment"

// File is one externally supplied input: a name, the last-modified time
// that becomes the memory's date, and a lazily opened byte source.
type File struct {
	Name    string
	ModTime time.Time
	Open    func() (io.ReadCloser, error)
}

// Progress is called after each successful file with the running count
// and the batch total.
type Progress func(done, total int)

type Ingestor struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Ingestor {
	return &Ingestor{store: st, log: log}
}

// Run processes the batch in order. Each file is read fully, embedded as
// a data URL, dated from its modification time (local calendar day) and
// created through the store. A file that fails to read is logged and
// skipped; the batch keeps going. Returns the number of records created.
func (in *Ingestor) Run(files []File, baseComment string, progress Progress) (int, error) {
	if len(files) == 0 {
		return 0, ErrEmptyBatch
	}
	if baseComment == "" {
		baseComment = DefaultComment
	}

	created := 0
	for _, f := range files {
		payload, err := readAll(f)
		if err != nil {
			in.log.Warn("skipping unreadable file", zap.String("name", f.Name), zap.Error(err))
			continue
		}

		fields := store.Fields{
			ImageContent: EncodePayload(payload),
			Date:         FormatDate(f.ModTime),
			Comment:      fmt.Sprintf("%s (%s)", baseComment, f.Name),
		}
		if _, err := in.store.Create(fields); err != nil {
			// Persist failures are warnings, not rollbacks: the record is
			// in the collection and the batch continues.
			in.log.Warn("memory created but not persisted", zap.String("name", f.Name), zap.Error(err))
		}

		created++
		if progress != nil {
			progress(created, len(files))
		}
	}
	return created, nil
}

func readAll(f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// EncodePayload wraps raw image bytes into a self-describing data URL.
func EncodePayload(raw []byte) string {
	mime := http.DetectContentType(raw)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(raw))
}

// FormatDate renders the local calendar date as zero-padded YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// Expand resolves doublestar patterns (and literal paths) into a sorted
// batch of Files. Patterns that match nothing are simply empty; a later
// empty batch is reported by Run.
func Expand(patterns []string) ([]File, error) {
	var paths []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			// A literal path with no glob magic may still exist.
			if _, statErr := os.Stat(p); statErr == nil {
				matches = []string{p}
			}
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	var files []File
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		path := path
		files = append(files, File{
			Name:    info.Name(),
			ModTime: info.ModTime(),
			Open:    func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return files, nil
}
