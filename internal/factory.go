package internal

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNoProvider is returned by Registry when no constructor is registered for
// a descriptor.
var ErrNoProvider = errors.New("tinyweb: no provider registered")

// Factory creates handler and filter instances.
// Create is called once per descriptor per request.
type Factory interface {
	Create(ctx context.Context, d Descriptor) (any, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, d Descriptor) (any, error)

// Create implements Factory.
func (f FactoryFunc) Create(ctx context.Context, d Descriptor) (any, error) {
	return f(ctx, d)
}

// Registry is a Factory backed by explicitly registered constructors.
// Register everything before the application starts serving; lookups are
// safe for concurrent use.
type Registry struct {
	providers map[reflect.Type]func(context.Context) (any, error)
	mu        sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[reflect.Type]func(context.Context) (any, error))}
}

// Provide registers a constructor called for every request that needs a T.
//
// Example:
//
//	reg := tinyweb.NewRegistry()
//	tinyweb.Provide(reg, func(ctx context.Context) (*ProductHandler, error) {
//	    return &ProductHandler{repo: repo}, nil
//	})
func Provide[T any](r *Registry, ctor func(ctx context.Context) (T, error)) {
	r.set(reflect.TypeFor[T](), func(ctx context.Context) (any, error) {
		return ctor(ctx)
	})
}

// ProvideValue registers a single instance shared by all requests.
// The value must be safe for concurrent use.
func ProvideValue[T any](r *Registry, v T) {
	r.set(reflect.TypeFor[T](), func(context.Context) (any, error) {
		return v, nil
	})
}

// Create implements Factory.
func (r *Registry) Create(ctx context.Context, d Descriptor) (any, error) {
	r.mu.RLock()
	ctor, ok := r.providers[d.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoProvider, d)
	}
	return ctor(ctx)
}

// Provides reports whether a constructor is registered for d.
func (r *Registry) Provides(d Descriptor) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[d.Type]
	return ok
}

func (r *Registry) set(t reflect.Type, ctor func(context.Context) (any, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[t] = ctor
}
