// Package registry provides the default in-memory action catalog.
//
// It implements ports.ActionResolver so the parser can bind entry/exit
// behavior names to invocable actions. The catalog is swappable: tests and
// hosts may provide their own resolver instead.
package registry

import (
	"context"
	"sync"

	"github.com/umlstate/umlstate/pkg/domain"
)

// Registry manages the available actions.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]domain.Action
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		actions: make(map[string]domain.Action),
	}
}

// Register adds an action to the registry.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn domain.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// Resolve looks up an action by name. The second return is false when the
// name is not registered; callers treat that as "no action", not an error.
func (r *Registry) Resolve(name string) (domain.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.actions[name]
	return fn, ok
}

// Invoke resolves and runs an action in one step.
// It is a no-op when the name is not registered.
func (r *Registry) Invoke(ctx context.Context, name string, vars map[string]any) error {
	fn, ok := r.Resolve(name)
	if !ok {
		return nil
	}
	return fn(ctx, vars)
}
