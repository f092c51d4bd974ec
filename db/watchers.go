package db

import (
	"bytes"
	"sync"
)

// Watchers holds the pending prefix subscriptions of one tree. A
// subscription is single-shot: its channel is closed by the first write
// whose key starts with the watched prefix, then forgotten.
type Watchers struct {
	mu      sync.Mutex
	pending map[string][]chan struct{}
}

// NewWatchers creates an empty registry.
func NewWatchers() *Watchers {
	return &Watchers{
		pending: make(map[string][]chan struct{}),
	}
}

// WatchPrefix registers interest in the next write under prefix. The
// returned channel is closed exactly once, by the first matching write
// committed after registration; writes committed earlier never fire it.
// Abandoning the channel before it fires is harmless.
func (w *Watchers) WatchPrefix(prefix []byte) <-chan struct{} {
	ch := make(chan struct{})
	w.mu.Lock()
	w.pending[string(prefix)] = append(w.pending[string(prefix)], ch)
	w.mu.Unlock()
	return ch
}

// Wake completes every subscription whose prefix matches key and removes
// it from the registry. It runs on the writer's own goroutine and holds
// the registry lock only for the scan, never across a transaction.
func (w *Watchers) Wake(key []byte) {
	w.mu.Lock()
	for prefix, waiters := range w.pending {
		if !bytes.HasPrefix(key, []byte(prefix)) {
			continue
		}
		for _, ch := range waiters {
			close(ch)
		}
		delete(w.pending, prefix)
	}
	w.mu.Unlock()
}
