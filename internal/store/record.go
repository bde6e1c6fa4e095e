package store

import (
	"errors"
	"strings"
)

// Memory is one dated, commented, image-bearing journal entry.
// The json tags match the slot format on disk.
type Memory struct {
	ID           string `json:"docId" yaml:"docId"`
	ImageContent string `json:"imageContent" yaml:"imageContent"`
	Date         string `json:"date" yaml:"date"`
	Comment      string `json:"comment" yaml:"comment"`
	Timestamp    string `json:"timestamp" yaml:"timestamp"`
}

// IsEmbedded reports whether the image is carried inline as a data URL
// rather than referenced by path.
func (m Memory) IsEmbedded() bool {
	return strings.HasPrefix(m.ImageContent, "data:")
}

// Fields carries the caller-supplied part of a record for Create and
// Update. On Update an empty field means "leave as is".
type Fields struct {
	ImageContent string
	Date         string
	Comment      string
}

// Validate enforces the edit-path contract: all three fields present.
// The date only needs to be YYYY-MM-DD-shaped text; records with dates
// that do not parse simply fail date comparisons downstream.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.ImageContent) == "" {
		return errors.New("image is required")
	}
	if strings.TrimSpace(f.Date) == "" {
		return errors.New("date is required")
	}
	if strings.TrimSpace(f.Comment) == "" {
		return errors.New("comment is required")
	}
	return nil
}
