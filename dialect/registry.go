package dialect

import (
	"sync"

	"github.com/wippyai/capigen/errors"
)

// Registry is an ordered set of dialects keyed by ID.
type Registry struct {
	byID     map[string]int
	dialects []Dialect
	mu       sync.RWMutex
	sealed   bool
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// DefaultRegistry returns an unsealed registry holding the built-in dialects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range Builtins() {
		r.MustRegister(d)
	}
	return r
}

// Register adds d. Duplicate IDs and registrations after Seal fail.
func (r *Registry) Register(d Dialect) error {
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.RegistrySealed(d.ID)
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.DuplicateDialect(d.ID)
	}
	r.byID[d.ID] = len(r.dialects)
	r.dialects = append(r.dialects, d.clone())
	return nil
}

func (r *Registry) MustRegister(d Dialect) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// All returns the dialects in registration order.
func (r *Registry) All() []Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Dialect, len(r.dialects))
	for i, d := range r.dialects {
		out[i] = d.clone()
	}
	return out
}

func (r *Registry) Get(id string) (Dialect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return Dialect{}, false
	}
	return r.dialects[i].clone(), true
}

// Select returns the named dialects in the order given. No ids means all.
func (r *Registry) Select(ids ...string) ([]Dialect, error) {
	if len(ids) == 0 {
		return r.All(), nil
	}
	out := make([]Dialect, 0, len(ids))
	for _, id := range ids {
		d, ok := r.Get(id)
		if !ok {
			return nil, errors.NotFound(errors.PhaseRegister, "dialect", id)
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.dialects)
}
