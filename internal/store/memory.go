// Package store holds the in-memory collections behind the admin tabs.
//
// A Memory store keeps one entity type keyed by id and hands out value
// copies, so a list taken by a tab is a snapshot that later writes do not
// touch.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// ErrDuplicateID is returned when an entity with the same id is already stored.
var ErrDuplicateID = errors.New("id already exists")

// BuildFunc turns decoded form data into a new entity with the given id.
type BuildFunc[E core.Entity] func(id string, data core.FormData) (E, error)

// ApplyFunc returns item updated with data. item is a copy the store owns.
type ApplyFunc[E core.Entity] func(item E, data core.FormData) (E, error)

// IDFunc generates the id of the next created entity. current lists the ids
// already in use.
type IDFunc func(current []string) string

// SequentialIDs returns max(numeric ids)+1.
func SequentialIDs(current []string) string {
	next := 1
	for _, id := range current {
		if n, err := strconv.Atoi(id); err == nil && n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}

// UUIDs returns a fresh random UUID.
func UUIDs([]string) string {
	return uuid.NewString()
}

// Memory is a concurrency-safe collection of E ordered by id.
// E should be a value type; pointers would leak shared state to snapshots.
type Memory[E core.Entity] struct {
	name  string
	build BuildFunc[E]
	apply ApplyFunc[E]
	ids   IDFunc

	mu    sync.RWMutex
	items map[string]E
}

// NewMemory returns an empty store. name is used in error messages.
func NewMemory[E core.Entity](name string, build BuildFunc[E], apply ApplyFunc[E], ids IDFunc) *Memory[E] {
	if ids == nil {
		ids = SequentialIDs
	}
	return &Memory[E]{
		name:  name,
		build: build,
		apply: apply,
		ids:   ids,
		items: make(map[string]E),
	}
}

// Seed adds items as they are. Duplicate ids fail the whole call.
func (m *Memory[E]) Seed(items ...E) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		id := it.EntityID()
		if _, exists := m.items[id]; exists || seen[id] {
			return fmt.Errorf("%s %s: %w", m.name, id, ErrDuplicateID)
		}
		seen[id] = true
	}
	for _, it := range items {
		m.items[it.EntityID()] = it
	}
	return nil
}

// All returns a typed snapshot ordered by id.
func (m *Memory[E]) All() []E {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]E, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return core.CompareIDs(out[i].EntityID(), out[j].EntityID()) < 0
	})
	return out
}

// Get returns the entity stored under id.
func (m *Memory[E]) Get(id string) (E, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	return it, ok
}

// Len returns the number of stored entities.
func (m *Memory[E]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// List implements core.Store.
func (m *Memory[E]) List(ctx context.Context) ([]core.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := m.All()
	out := make([]core.Entity, len(all))
	for i, it := range all {
		out[i] = it
	}
	return out, nil
}

// Create implements core.Store.
func (m *Memory[E]) Create(ctx context.Context, data core.FormData) (core.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.ids(m.idsLocked())
	if _, exists := m.items[id]; exists {
		return nil, fmt.Errorf("%s %s: %w", m.name, id, ErrDuplicateID)
	}
	item, err := m.build(id, data)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", m.name, err)
	}
	m.items[id] = item
	return item, nil
}

// Update implements core.Store. The entity is looked up by id, so item may
// come from an older snapshot.
func (m *Memory[E]) Update(ctx context.Context, item core.Entity, data core.FormData) (core.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("update %s: %w", m.name, core.ErrItemNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := item.EntityID()
	current, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("update %s %s: %w", m.name, id, core.ErrItemNotFound)
	}
	updated, err := m.apply(current, data)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", m.name, id, err)
	}
	if updated.EntityID() != id {
		return nil, fmt.Errorf("update %s %s: id cannot change", m.name, id)
	}
	m.items[id] = updated
	return updated, nil
}

// Delete implements core.Store.
func (m *Memory[E]) Delete(ctx context.Context, item core.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("delete %s: %w", m.name, core.ErrItemNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := item.EntityID()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("delete %s %s: %w", m.name, id, core.ErrItemNotFound)
	}
	delete(m.items, id)
	return nil
}

// CreateAll builds every entry of batch and stores them together. Either all
// are stored or none.
func (m *Memory[E]) CreateAll(ctx context.Context, batch []core.FormData) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.idsLocked()
	built := make([]E, 0, len(batch))
	for i, data := range batch {
		id := m.ids(ids)
		item, err := m.build(id, data)
		if err != nil {
			return nil, fmt.Errorf("import row %d: %w", i+2, err)
		}
		ids = append(ids, id)
		built = append(built, item)
	}
	for _, it := range built {
		m.items[it.EntityID()] = it
	}
	return built, nil
}

func (m *Memory[E]) idsLocked() []string {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	return ids
}
