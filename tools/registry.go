// Package tools maintains a registry of callable functions that a model can
// invoke through function calling. Declarations registered here are advertised
// to the service on each request, and the matching handlers run when the model
// responds with a function call.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/strandworks/genchat/core/generate"
)

// Handler is the function signature for tool implementations.
// Handlers receive the request context and the argument map decoded from the
// model's function call, and return the value map that is sent back to the
// model as the function response.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

type entry struct {
	decl    *generate.FunctionDeclaration
	handler Handler
}

// Registry maps function declarations to their handlers.
// Safe for concurrent use. The zero value is not usable; call New.
type Registry struct {
	entries map[string]entry
	mu      sync.RWMutex
}

// New returns an empty tool registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a new tool to the registry.
// Returns ErrAlreadyExists if a tool with the same name is already registered.
// Use Replace to update an existing tool's handler.
func (r *Registry) Register(decl *generate.FunctionDeclaration, handler Handler) error {
	if decl == nil || decl.Name == "" {
		return ErrEmptyName
	}
	if handler == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[decl.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, decl.Name)
	}

	r.entries[decl.Name] = entry{decl: decl, handler: handler}
	return nil
}

// Replace updates an existing tool's declaration and handler.
// Returns ErrNotFound if no tool with the given name is registered.
func (r *Registry) Replace(decl *generate.FunctionDeclaration, handler Handler) error {
	if decl == nil || decl.Name == "" {
		return ErrEmptyName
	}
	if handler == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[decl.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, decl.Name)
	}

	r.entries[decl.Name] = entry{decl: decl, handler: handler}
	return nil
}

// Get retrieves a handler by tool name.
// Returns the handler and true if found, nil and false otherwise.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, false
	}
	return e.handler, true
}

// Declarations returns the registered declarations sorted by name.
func (r *Registry) Declarations() []*generate.FunctionDeclaration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decls := make([]*generate.FunctionDeclaration, 0, len(r.entries))
	for _, e := range r.entries {
		decls = append(decls, e.decl)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls
}

// Tools packages the registered declarations as the tool list of a request.
// Returns nil when the registry is empty.
func (r *Registry) Tools() []*generate.Tool {
	decls := r.Declarations()
	if len(decls) == 0 {
		return nil
	}
	return []*generate.Tool{{FunctionDeclarations: decls}}
}

// Call dispatches a function call to the registered handler by name.
// Returns ErrNotFound if the tool is not registered.
// Handler errors are wrapped with the tool name for context.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	r.mu.RLock()
	e, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	result, err := e.handler(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("tool %s execution failed: %w", name, err)
	}

	return result, nil
}
