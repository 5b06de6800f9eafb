package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownTheme is returned for names that match no built-in palette.
var ErrUnknownTheme = errors.New("unknown theme")

// Saver persists a theme choice, usually into the user's config file.
type Saver func(name string) error

// Manager tracks which built-in palette is active. Changes made with Next
// are written back through the Saver; Use only switches.
type Manager struct {
	mu    sync.RWMutex
	index int
	save  Saver
}

var active = &Manager{}

// Active returns the manager every style helper reads its colours from.
func Active() *Manager { return active }

// Current returns the active theme.
func Current() Theme { return active.Theme() }

// Names lists the built-in palettes in cycling order, default first.
func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.name
	}
	return names
}

// SetSaver replaces the persistence hook. A nil Saver disables saving.
func (m *Manager) SetSaver(save Saver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.save = save
}

// Use activates the named palette. Names match case-insensitively.
func (m *Manager) Use(name string) error {
	i, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = i
	return nil
}

// Next moves to the following palette, wrapping after the last, and saves
// the new name. A failed save leaves the switch in place and is returned.
func (m *Manager) Next() (string, error) {
	m.mu.Lock()
	m.index = (m.index + 1) % len(palettes)
	name := palettes[m.index].name
	save := m.save
	m.mu.Unlock()

	if save == nil {
		return name, nil
	}
	if err := save(name); err != nil {
		return name, fmt.Errorf("save theme %s: %w", name, err)
	}
	return name, nil
}

// Name returns the name of the active palette.
func (m *Manager) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return palettes[m.index].name
}

// Theme returns the active palette.
func (m *Manager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return palettes[m.index].palette
}

func lookup(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, p := range palettes {
		if p.name == name {
			return i, true
		}
	}
	return 0, false
}
