// Package preview owns the annotated image currently shown over the live
// stream.
package preview

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrRevoked is returned when a resource URL no longer resolves.
	ErrRevoked = errors.New("preview: resource revoked")
	// ErrEmpty is returned when asked to create a resource without data.
	ErrEmpty = errors.New("preview: empty image")
)

// Resource is a displayable handle backed by image bytes.
type Resource interface {
	URL() string
	Release()
}

type blob struct {
	data     []byte
	mimeType string
}

// Store hands out object-URL style handles for in-memory images.
// A handle resolves until it is released.
type Store struct {
	prefix string
	mu     sync.RWMutex
	blobs  map[string]blob
}

// NewStore creates a Store whose URLs start with prefix, e.g. "/blob/".
func NewStore(prefix string) *Store {
	return &Store{
		prefix: prefix,
		blobs:  make(map[string]blob),
	}
}

// Create registers data under a fresh URL.
func (s *Store) Create(data []byte, mimeType string) (Resource, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.blobs[id] = blob{data: data, mimeType: mimeType}
	s.mu.Unlock()

	return &handle{store: s, id: id, url: s.prefix + id}, nil
}

// Get resolves an ID or URL to its bytes and MIME type.
func (s *Store) Get(idOrURL string) ([]byte, string, error) {
	id := strings.TrimPrefix(idOrURL, s.prefix)

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[id]
	if !ok {
		return nil, "", ErrRevoked
	}
	return b.data, b.mimeType, nil
}

// Len returns the number of live resources.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

func (s *Store) revoke(id string) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
}

type handle struct {
	store *Store
	id    string
	url   string
	once  sync.Once
}

func (h *handle) URL() string {
	return h.url
}

// Release revokes the URL. Later calls are no-ops.
func (h *handle) Release() {
	h.once.Do(func() { h.store.revoke(h.id) })
}
