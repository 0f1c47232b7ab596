// Package registry maps discriminator strings to shape constructors.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

// EntityConstructor builds a typed entity from a raw record. Rejected field
// data is reported as a *domain.ValidationError.
type EntityConstructor func(raw map[string]any) (domain.Entity, error)

// RelationshipConstructor builds a typed relationship from a raw record whose
// Source and Target have already been resolved. raw no longer carries them.
type RelationshipConstructor func(raw map[string]any, source, target domain.Entity) (domain.Relationship, error)

// Registry holds one constructor table for entities and one for
// relationships. It is filled at start-up and then sealed.
type Registry struct {
	mu            sync.RWMutex
	sealed        bool
	entities      map[string]EntityConstructor
	relationships map[string]RelationshipConstructor
}

func New() *Registry {
	return &Registry{
		entities:      map[string]EntityConstructor{},
		relationships: map[string]RelationshipConstructor{},
	}
}

func (r *Registry) RegisterEntity(discriminator string, fn EntityConstructor) error {
	if fn == nil {
		return r.fail("registry.register_entity", discriminator, fmt.Errorf("constructor is nil"))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkLocked("registry.register_entity", discriminator); err != nil {
		return err
	}
	r.entities[discriminator] = fn
	return nil
}

func (r *Registry) RegisterRelationship(discriminator string, fn RelationshipConstructor) error {
	if fn == nil {
		return r.fail("registry.register_relationship", discriminator, fmt.Errorf("constructor is nil"))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkLocked("registry.register_relationship", discriminator); err != nil {
		return err
	}
	r.relationships[discriminator] = fn
	return nil
}

// checkLocked rejects empty names, names already used by either table, and
// any registration after Seal.
func (r *Registry) checkLocked(op, discriminator string) error {
	if r.sealed {
		return r.fail(op, discriminator, domain.ErrRegistrySealed)
	}
	if strings.TrimSpace(discriminator) == "" {
		return r.fail(op, discriminator, fmt.Errorf("empty discriminator"))
	}
	_, isEntity := r.entities[discriminator]
	_, isRel := r.relationships[discriminator]
	if isEntity || isRel {
		return r.fail(op, discriminator, domain.ErrDuplicateType)
	}
	return nil
}

func (r *Registry) fail(op, discriminator string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindRegistry,
		Err:  fmt.Errorf("%q: %w", discriminator, err),
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

// ResolveEntity returns the constructor for discriminator. An unknown
// discriminator is reported with ok == false.
func (r *Registry) ResolveEntity(discriminator string) (EntityConstructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.entities[discriminator]
	return fn, ok
}

func (r *Registry) ResolveRelationship(discriminator string) (RelationshipConstructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.relationships[discriminator]
	return fn, ok
}

// EntityTypes lists registered entity discriminators in lexical order.
func (r *Registry) EntityTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.entities)
}

// RelationshipTypes lists registered relationship discriminators in lexical order.
func (r *Registry) RelationshipTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.relationships)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
