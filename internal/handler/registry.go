package handler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/rigup/internal/logger"
)

// ErrHandlerNotFound is returned when no handler is registered for a kind.
type ErrHandlerNotFound struct {
	Kind string
}

func (e ErrHandlerNotFound) Error() string {
	return fmt.Sprintf("no handler registered for declaration kind %q", e.Kind)
}

// Registry maps declaration kinds to their handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   *logger.Logger
}

// NewRegistry returns an empty handler registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   log,
	}
}

// Register adds a handler under its metadata kind.
func (r *Registry) Register(h Handler) error {
	if h == nil {
		return fmt.Errorf("handler is nil")
	}

	meta := h.Metadata()
	if meta.Kind == "" {
		return fmt.Errorf("handler metadata requires a kind")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[meta.Kind]; exists {
		return fmt.Errorf("handler for kind %q already registered", meta.Kind)
	}

	r.handlers[meta.Kind] = h
	r.logger.With("kind", meta.Kind).Debug("handler registered")
	return nil
}

// Get returns the handler for a kind.
func (r *Registry) Get(kind string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[kind]
	if !ok {
		return nil, ErrHandlerNotFound{Kind: kind}
	}
	return h, nil
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
