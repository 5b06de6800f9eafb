// Package validation holds field validation errors keyed by field id.
//
// Widgets register and clear their own entries; a separate display component
// reads them back. Each widget must use a unique id.
package validation

import (
	"sort"
	"sync"
)

// Error is a single field validation entry. Hidden entries are tracked but
// not yet shown to the user, typically until the form is submitted.
type Error struct {
	Message string
	Hidden  bool
}

// Registry is the read/write surface widgets bind to.
type Registry interface {
	SetError(id string, err Error)
	ClearError(id string)
	GetError(id string) (Error, bool)
	// ShowAll unhides every entry, typically on form submit.
	ShowAll()
	// Errors returns a snapshot of every registered entry.
	Errors() map[string]Error
}

// MemoryRegistry is a goroutine-safe in-process Registry.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]Error
}

// NewMemoryRegistry returns an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: make(map[string]Error)}
}

// SetError records or replaces the entry for id.
func (r *MemoryRegistry) SetError(id string, err Error) {
	if id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = err
}

// ClearError removes the entry for id. Clearing a missing id is a no-op.
func (r *MemoryRegistry) ClearError(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// GetError returns the entry for id.
func (r *MemoryRegistry) GetError(id string) (Error, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// ShowAll marks every entry visible.
func (r *MemoryRegistry) ShowAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		e.Hidden = false
		r.entries[id] = e
	}
}

// Errors returns a copy of every entry.
func (r *MemoryRegistry) Errors() map[string]Error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Error, len(r.entries))
	for id, e := range r.entries {
		out[id] = e
	}
	return out
}

// IDs returns the ids with a registered entry, sorted.
func IDs(r Registry) []string {
	if r == nil {
		return nil
	}
	errs := r.Errors()
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Visible returns the message for id when it is registered and not hidden.
func Visible(r Registry, id string) (string, bool) {
	if r == nil {
		return "", false
	}
	e, ok := r.GetError(id)
	if !ok || e.Hidden || e.Message == "" {
		return "", false
	}
	return e.Message, true
}
