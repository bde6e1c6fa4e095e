package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Slot persists the whole collection as a single JSON file. There is no
// schema versioning and no incremental writes: every save rewrites the
// full array, every load reads it back in one piece.
type Slot struct {
	path string
	log  *zap.Logger
}

func NewSlot(path string, log *zap.Logger) *Slot {
	return &Slot{path: path, log: log}
}

// Path returns the location of the slot file on disk.
func (s *Slot) Path() string {
	return s.path
}

// Save serializes the collection and writes it to the slot. A failed
// write (disk full, permissions, missing volume) comes back as an error
// so the caller can warn the user; the in-memory collection stays
// authoritative either way.
func (s *Slot) Save(memories []Memory) error {
	data, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize collection: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Warn("slot write failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Load reads the slot back. A missing or unparsable slot yields an empty
// collection; both cases are logged and never propagate.
func (s *Slot) Load() []Memory {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("slot read failed", zap.String("path", s.path), zap.Error(err))
		}
		return []Memory{}
	}

	var memories []Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		s.log.Warn("slot is corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return []Memory{}
	}
	if memories == nil {
		memories = []Memory{}
	}
	return memories
}
