// Package history keeps a bounded window of recent numeric samples.
package history

import "sync"

// Capacity is the number of samples the dashboard keeps.
const Capacity = 30

// Ring is a fixed-capacity FIFO of samples, oldest first.
// Appending past capacity evicts the oldest sample; nothing else removes.
type Ring struct {
	mu       sync.RWMutex
	capacity int
	values   []int
}

// NewRing creates a ring holding at most capacity samples.
// A capacity below 1 falls back to Capacity.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = Capacity
	}
	return &Ring{
		capacity: capacity,
		values:   make([]int, 0, capacity),
	}
}

// Append adds v as the newest sample.
func (r *Ring) Append(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.values) == r.capacity {
		copy(r.values, r.values[1:])
		r.values = r.values[:len(r.values)-1]
	}
	r.values = append(r.values, v)
}

// Values returns a copy of the samples, oldest first.
func (r *Ring) Values() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of samples held.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return r.capacity
}
