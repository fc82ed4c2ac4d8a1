// Package registry holds the ordered declaration sequence for a run.
// Registration order is reconciliation order: the caller is responsible for
// ordering declarations so that dependencies come first, and the registry
// never reorders.
package registry

import (
	"fmt"

	"github.com/alexisbeaulieu97/rigup/internal/config"
)

// DuplicateIDError reports a second registration under an already-used id.
// This is a programmer (or document) error, not an environment failure.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("declaration id %q already registered", e.ID)
}

// Registry is an append-only, ordered collection of declarations with unique
// ids.
type Registry struct {
	decls []config.Declaration
	index map[string]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// FromConfig builds a registry from a validated document, preserving document
// order and skipping disabled declarations.
func FromConfig(cfg *config.Config) (*Registry, error) {
	r := New()
	for _, decl := range cfg.Declarations {
		if !decl.Enabled {
			continue
		}
		if err := r.Register(decl); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a declaration. It fails with DuplicateIDError when the id
// is already present.
func (r *Registry) Register(decl config.Declaration) error {
	if decl.ID == "" {
		return fmt.Errorf("declaration id is required")
	}
	if _, exists := r.index[decl.ID]; exists {
		return &DuplicateIDError{ID: decl.ID}
	}
	r.index[decl.ID] = struct{}{}
	r.decls = append(r.decls, decl)
	return nil
}

// Declarations returns the registered declarations in registration order.
// The returned slice is a copy; callers cannot mutate registry state.
func (r *Registry) Declarations() []config.Declaration {
	out := make([]config.Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// Len reports the number of registered declarations.
func (r *Registry) Len() int {
	return len(r.decls)
}
