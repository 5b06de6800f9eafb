// Package store is the picker's application state slice. State is only
// changed by dispatching Command values and only read through selectors,
// so no caller ever holds a reference into the live state.
package store

import (
	"sync"

	"attrpicker/internal/catalog"
)

// Severity classifies a notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a dismissible user-facing message.
type Notice struct {
	ID       string
	Message  string
	Severity Severity
}

// Selection is an attribute attached to the product being edited. Local
// selections exist only on the product and were never created globally.
type Selection struct {
	Attribute catalog.Attribute
	Local     bool
}

// State is a snapshot of the slice.
type State struct {
	Attributes []catalog.Attribute
	Selected   []Selection
	Notices    []Notice
}

func (s State) clone() State {
	return State{
		Attributes: append([]catalog.Attribute(nil), s.Attributes...),
		Selected:   append([]Selection(nil), s.Selected...),
		Notices:    append([]Notice(nil), s.Notices...),
	}
}

// Snapshot lets selectors read the State handed to subscribers.
func (s State) Snapshot() State { return s }

// Reader exposes snapshots to selectors.
type Reader interface {
	Snapshot() State
}

// Store is the typed interface UI code depends on.
type Store interface {
	Reader
	Dispatch(cmd Command) error
	Subscribe(fn func(State)) (unsubscribe func())
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	state  State
	nextID int
	subs   map[int]func(State)
}

// New returns an empty store.
func New() *Memory {
	return &Memory{subs: make(map[int]func(State))}
}

// Snapshot returns a copy of the current state.
func (m *Memory) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// Dispatch applies cmd and notifies subscribers. A command that fails
// leaves the state untouched and notifies nobody.
func (m *Memory) Dispatch(cmd Command) error {
	if cmd == nil {
		return nil
	}
	m.mu.Lock()
	next := m.state.clone()
	if err := cmd.apply(&next); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = next
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	snapshot := m.state.clone()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return nil
}

// Subscribe registers fn to run after every successful dispatch.
func (m *Memory) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}
