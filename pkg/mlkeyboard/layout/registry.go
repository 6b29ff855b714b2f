package layout

import (
	"errors"
	"fmt"
	"iter"
	"sync"
)

var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrEmptyID         = errors.New("layout id must not be empty")
)

// Registry maps language identifiers to layout tables.
// Identifiers keep the order in which they were first registered.
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]Table
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]Table),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, seeded with the built-in layouts on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterBuiltins(defaultRegistry); err != nil {
			panic("failed to load built-in layouts: " + err.Error())
		}
	})
	return defaultRegistry
}

// Register stores t under id, replacing any table already registered there.
// Tables whose grids differ in shape are rejected.
func (r *Registry) Register(id string, t Table) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("layout %q: %w", id, err)
	}
	if t.Name == "" {
		t.Name = id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[id]; !exists {
		r.order = append(r.order, id)
	}
	r.tables[id] = t.Clone()
	return nil
}

// Get returns a copy of the table registered under id.
func (r *Registry) Get(id string) (Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[id]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, id)
	}
	return t.Clone(), nil
}

func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tables[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List yields registered identifiers in insertion order.
// Each range over the sequence starts from the beginning of a fresh snapshot.
func (r *Registry) List() iter.Seq[string] {
	return func(yield func(string) bool) {
		r.mu.RLock()
		ids := append([]string(nil), r.order...)
		r.mu.RUnlock()

		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}
