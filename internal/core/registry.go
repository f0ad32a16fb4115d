package core

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateTab is returned when two tabs share an ID.
	ErrDuplicateTab = errors.New("tab already registered")

	// ErrInvalidTab is returned for structurally invalid tab configurations.
	ErrInvalidTab = errors.New("invalid tab configuration")
)

// Registry is the ordered list of tabs a surface manages.
// Tabs keep their registration order.
type Registry struct {
	mu    sync.RWMutex
	tabs  []Tab
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a tab after validating it.
func (r *Registry) Register(tab Tab) error {
	if err := validateTab(tab); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[tab.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTab, tab.ID)
	}

	r.index[tab.ID] = len(r.tabs)
	r.tabs = append(r.tabs, tab)
	return nil
}

// MustRegister adds a tab and panics on error. Use it for static setup.
func (r *Registry) MustRegister(tab Tab) {
	if err := r.Register(tab); err != nil {
		panic(err.Error())
	}
}

// Get returns a tab by ID.
// Returns false if not found.
func (r *Registry) Get(id string) (Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Tab{}, false
	}
	return r.tabs[i], true
}

// All returns every tab in registration order.
func (r *Registry) All() []Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tab, len(r.tabs))
	copy(out, r.tabs)
	return out
}

// First returns the first registered tab.
func (r *Registry) First() (Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.tabs) == 0 {
		return Tab{}, false
	}
	return r.tabs[0], true
}

// Count returns the number of registered tabs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}

func validateTab(tab Tab) error {
	if tab.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidTab)
	}
	if tab.Store == nil {
		return fmt.Errorf("%w: %s has no store", ErrInvalidTab, tab.ID)
	}

	seen := make(map[string]bool, len(tab.Columns))
	for _, c := range tab.Columns {
		if c.Key == "" {
			return fmt.Errorf("%w: %s has a column without key", ErrInvalidTab, tab.ID)
		}
		if seen[c.Key] {
			return fmt.Errorf("%w: %s has duplicate column %q", ErrInvalidTab, tab.ID, c.Key)
		}
		seen[c.Key] = true
	}

	seen = make(map[string]bool, len(tab.Filters))
	for _, f := range tab.Filters {
		if f.Key == "" {
			return fmt.Errorf("%w: %s has a filter without key", ErrInvalidTab, tab.ID)
		}
		if seen[f.Key] {
			return fmt.Errorf("%w: %s has duplicate filter %q", ErrInvalidTab, tab.ID, f.Key)
		}
		seen[f.Key] = true
	}
	return nil
}
