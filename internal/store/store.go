package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an operation targets an id that is not in
// the collection. Callers treat it as a logged no-op, not a fatal error.
var ErrNotFound = errors.New("memory not found")

// ErrPersist wraps slot write failures. The mutation that triggered the
// save is NOT rolled back: the in-memory collection stays authoritative
// and the caller is expected to surface a warning instead.
type ErrPersist struct {
	Err error
}

func (e *ErrPersist) Error() string { return "could not save memories: " + e.Err.Error() }
func (e *ErrPersist) Unwrap() error { return e.Err }

// Store owns the canonical collection of memories. All mutation goes
// through Create/Update/Delete; every mutation persists the full
// collection to the slot and fires the change notification.
type Store struct {
	mu       sync.RWMutex
	memories []Memory
	slot     *Slot
	log      *zap.Logger
	onChange func()
}

// Open loads the collection from the slot and returns the store around it.
func Open(slot *Slot, log *zap.Logger) *Store {
	return &Store{
		memories: slot.Load(),
		slot:     slot,
		log:      log,
	}
}

// OnChange registers the single "store changed" hook. The renderer hangs
// its full re-render off this; an incremental renderer could be swapped
// in without touching the store. Safe to call while mutations or a
// watcher-driven Reload run on other goroutines.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Create assigns a fresh id and creation timestamp, appends the record
// and persists. Duplicates by content are permitted. The returned error
// is always an *ErrPersist; the record is in the collection regardless.
func (s *Store) Create(f Fields) (Memory, error) {
	m := Memory{
		ID:           uuid.NewString(),
		ImageContent: f.ImageContent,
		Date:         f.Date,
		Comment:      f.Comment,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.memories = append(s.memories, m)
	err := s.slot.Save(s.memories)
	s.mu.Unlock()

	s.notify()
	if err != nil {
		return m, &ErrPersist{Err: err}
	}
	return m, nil
}

// Update merges the supplied fields over the existing record. Empty
// fields are left untouched; id and creation timestamp are immutable.
// An unknown id is a logged no-op reported as ErrNotFound.
func (s *Store) Update(id string, f Fields) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Warn("update target not found", zap.String("id", id))
		return ErrNotFound
	}
	if f.ImageContent != "" {
		s.memories[idx].ImageContent = f.ImageContent
	}
	if f.Date != "" {
		s.memories[idx].Date = f.Date
	}
	if f.Comment != "" {
		s.memories[idx].Comment = f.Comment
	}
	err := s.slot.Save(s.memories)
	s.mu.Unlock()

	s.notify()
	if err != nil {
		return &ErrPersist{Err: err}
	}
	return nil
}

// Delete removes the record with the given id and persists. The explicit
// user confirmation happens in the UI before this is ever called.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Warn("delete target not found", zap.String("id", id))
		return ErrNotFound
	}
	s.memories = append(s.memories[:idx], s.memories[idx+1:]...)
	err := s.slot.Save(s.memories)
	s.mu.Unlock()

	s.notify()
	if err != nil {
		return &ErrPersist{Err: err}
	}
	return nil
}

// List returns a snapshot of the collection. Callers get their own copy;
// mutating it does not touch the store.
func (s *Store) List() []Memory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Memory, len(s.memories))
	copy(out, s.memories)
	return out
}

// Get looks a single record up by id.
func (s *Store) Get(id string) (Memory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.memories[idx], true
	}
	return Memory{}, false
}

// Len reports the size of the unfiltered collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memories)
}

// Reload replaces the in-memory collection with whatever the slot holds
// now. Used when another process rewrites the slot file.
func (s *Store) Reload() {
	fresh := s.slot.Load()
	s.mu.Lock()
	s.memories = fresh
	s.mu.Unlock()
	s.notify()
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, m := range s.memories {
		if m.ID == id {
			return i
		}
	}
	return -1
}
