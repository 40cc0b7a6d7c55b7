// Package view holds the state shown to the operator: the live video
// surface with its poster, and the dashboard counters and chart.
package view

import (
	"errors"
	"image"
	"sync"

	"helmetwatch/internal/dto"
)

// ErrNoSource is returned when the surface has no stream bound to it.
var ErrNoSource = errors.New("view: no stream bound to surface")

// Source is a live video feed that can be bound to a Surface.
type Source interface {
	// NaturalSize reports the native frame size, 0x0 until frames arrive.
	NaturalSize() (width, height int)
	// DrawInto copies the current frame into dst, which must already be
	// sized to NaturalSize.
	DrawInto(dst *image.RGBA) error
}

// Notifier receives view updates, typically the viewer websocket hub.
type Notifier interface {
	Publish(event dto.ViewEvent)
}

// Surface is the video element: a bound stream plus a poster image.
type Surface struct {
	mu       sync.RWMutex
	source   Source
	poster   string
	notifier Notifier
}

// NewSurface creates an unbound surface. notifier may be nil.
func NewSurface(notifier Notifier) *Surface {
	return &Surface{notifier: notifier}
}

// Attach binds src to the surface, replacing any previous source.
func (s *Surface) Attach(src Source) {
	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
}

// Detach unbinds the current source.
func (s *Surface) Detach() {
	s.mu.Lock()
	s.source = nil
	s.mu.Unlock()
}

// NaturalSize returns the bound source's native size, or 0x0.
func (s *Surface) NaturalSize() (int, int) {
	s.mu.RLock()
	src := s.source
	s.mu.RUnlock()

	if src == nil {
		return 0, 0
	}
	return src.NaturalSize()
}

// DrawInto snapshots the bound source into dst.
func (s *Surface) DrawInto(dst *image.RGBA) error {
	s.mu.RLock()
	src := s.source
	s.mu.RUnlock()

	if src == nil {
		return ErrNoSource
	}
	return src.DrawInto(dst)
}

// SetPoster installs url as the poster image.
func (s *Surface) SetPoster(url string) {
	s.mu.Lock()
	s.poster = url
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Publish(dto.ViewEvent{Type: dto.EventPoster, URL: url})
	}
}

// Poster returns the installed poster URL.
func (s *Surface) Poster() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.poster
}
