package pull

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrDuplicateID is returned when registering an identifier that already
// has an active pull. Callers that generate identifiers never hit this.
var ErrDuplicateID = errors.New("pull: identifier already in use")

// Token is a shared cancellation flag for one pull. The canceller sets it;
// the pull loop reads it lock-free between chunks.
type Token struct {
	cancelled atomic.Bool
}

// Cancel requests that the pull observing this token stop.
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

// Registry tracks the cancellation tokens of all active pulls. An entry
// exists if and only if a pull with that identifier is currently
// streaming.
type Registry struct {
	mu     sync.Mutex
	tokens map[string]*Token
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]*Token)}
}

// Register creates a fresh token for id. It fails with ErrDuplicateID if a
// pull with that identifier is already active.
func (r *Registry) Register(id string) (*Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[id]; ok {
		return nil, ErrDuplicateID
	}
	t := &Token{}
	r.tokens[id] = t
	return t, nil
}

// RequestCancel sets the token for id and reports whether a pull with that
// identifier was active. A false return is a normal outcome: the pull may
// have already finished.
func (r *Registry) RequestCancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[id]
	if !ok {
		return false
	}
	t.Cancel()
	return true
}

// Unregister removes the entry for id. It is called exactly once per pull,
// on every exit path, so stale cancellation requests can never reach a
// later pull that reuses the identifier.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
}

// Active returns the number of currently streaming pulls.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
