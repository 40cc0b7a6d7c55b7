package preview

import (
	"fmt"
	"sync"
)

// Creator makes displayable resources from image bytes.
type Creator interface {
	Create(data []byte, mimeType string) (Resource, error)
}

// Poster is the display element the preview is installed on.
type Poster interface {
	SetPoster(url string)
}

// Slot holds exactly one live preview resource.
type Slot struct {
	mu      sync.Mutex
	creator Creator
	poster  Poster
	current Resource
}

// NewSlot creates an empty slot.
func NewSlot(creator Creator, poster Poster) *Slot {
	return &Slot{creator: creator, poster: poster}
}

// Replace releases the current resource, creates a new one from data and
// installs it on the poster. The previous resource is released on every
// path; if creation fails the slot is left empty.
func (s *Slot) Replace(data []byte, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.current
	s.current = nil
	if previous != nil {
		previous.Release()
	}

	res, err := s.creator.Create(data, mimeType)
	if err != nil {
		s.poster.SetPoster("")
		return fmt.Errorf("failed to create preview resource: %w", err)
	}

	s.current = res
	s.poster.SetPoster(res.URL())
	return nil
}

// URL returns the URL of the installed resource, or "" when empty.
func (s *Slot) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	return s.current.URL()
}

// Clear releases the installed resource, if any.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Release()
		s.current = nil
		s.poster.SetPoster("")
	}
}
