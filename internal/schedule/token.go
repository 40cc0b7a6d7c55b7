// Package schedule runs repeating tasks with explicit cancellation.
//
// A Token only ever stops the scheduling of future runs. Task bodies get
// the context handed to Run, never the token, so cancelling a token does
// not interrupt work that is already in flight.
package schedule

import "sync"

// Token is a one-shot cancellation signal shared between a controller
// and the task it started.
type Token struct {
	once sync.Once
	done chan struct{}
}

// NewToken returns a live token.
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel marks the token cancelled. Safe to call more than once.
func (t *Token) Cancel() {
	t.once.Do(func() { close(t.done) })
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done is closed once the token is cancelled.
func (t *Token) Done() <-chan struct{} {
	return t.done
}
