package rpc

import "sync"

// Registry tracks in-flight request/reply calls by correlation id. Each
// entry is a completion handle owned by exactly one Call: created at send
// time, resolved exactly once by the reply consumer, or discarded on
// timeout. Resolve and Discard are mutually exclusive per id: whichever
// runs first wins and the loser observes "not found".
type Registry struct {
	mu      sync.Mutex
	pending map[string]chan []byte
	closed  bool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]chan []byte)}
}

// Register creates a pending entry under id and returns its completion
// handle. Returns false when the registry has been shut down.
func (registry *Registry) Register(id string) (<-chan []byte, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.closed {
		return nil, false
	}

	// buffered so the resolver never blocks on a caller that is still
	// racing its timeout
	handle := make(chan []byte, 1)
	registry.pending[id] = handle
	return handle, true
}

// Resolve completes the pending entry for id with body. Returns true when
// an entry existed and was resolved; false when id is unknown or already
// resolved/discarded, in which case the reply is dropped.
func (registry *Registry) Resolve(id string, body []byte) bool {
	registry.mu.Lock()
	handle, ok := registry.pending[id]
	if ok {
		delete(registry.pending, id)
	}
	registry.mu.Unlock()

	if !ok {
		return false
	}

	handle <- body
	close(handle)
	return true
}

// Discard removes the pending entry for id without resolving it. Returns
// true when an entry existed. Used by the timeout path; a reply arriving
// afterwards finds nothing and is dropped.
func (registry *Registry) Discard(id string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	_, ok := registry.pending[id]
	if ok {
		delete(registry.pending, id)
	}
	return ok
}

// Shutdown fails every outstanding entry by closing its handle and refuses
// further registrations. Safe to call more than once.
func (registry *Registry) Shutdown() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.closed {
		return
	}
	registry.closed = true

	for id, handle := range registry.pending {
		delete(registry.pending, id)
		close(handle)
	}
}

// PendingCount reports how many calls are currently awaiting a reply.
func (registry *Registry) PendingCount() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.pending)
}
