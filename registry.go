package recwire

import (
	"context"
	"sync"
)

// TypeHandler implements conversion and validation for one string-backed or
// custom scalar type. Implementations must be stateless: a single value
// serves every schema and every concurrent caller.
type TypeHandler interface {
	// Encode converts a record field value into a value-tree node.
	Encode(ctx context.Context, v any) (any, error)
	// Decode checks an input node and returns the converted value the
	// engine writes through the field's accessor.
	Decode(ctx context.Context, node any) (any, error)
	// Validate checks an input node without producing a value.
	Validate(ctx context.Context, node any) error
}

// Registry maps format tags to TypeHandler implementations. Register is
// last-writer-wins, including over the built-ins. Registration is meant for
// startup configuration; once concurrent traffic has begun only Lookup
// should be called. The RWMutex keeps a late Register from corrupting the
// map, but callers get no ordering guarantee with in-flight Lookups.
type Registry struct {
	mu sync.RWMutex
	m  map[FieldType]TypeHandler
}

// NewRegistry returns an empty registry, e.g. for isolated test
// configurations injected via Builder.WithHandlers.
func NewRegistry() *Registry {
	return &Registry{m: map[FieldType]TypeHandler{}}
}

// Register installs h for t, replacing any previous handler.
func (r *Registry) Register(t FieldType, h TypeHandler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	r.m[t] = h
	r.mu.Unlock()
}

// Lookup returns the handler for t, if any.
func (r *Registry) Lookup(t FieldType) (TypeHandler, bool) {
	r.mu.RLock()
	h, ok := r.m[t]
	r.mu.RUnlock()
	return h, ok
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry. The first call, from
// any goroutine, installs the built-in handlers exactly once.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		registerBuiltins(r)
		defaultRegistry = r
	})
	return defaultRegistry
}

// RegisterHandler installs h in the process-wide registry.
func RegisterHandler(t FieldType, h TypeHandler) {
	DefaultRegistry().Register(t, h)
}

// registerBuiltins installs the five built-in format handlers.
func registerBuiltins(r *Registry) {
	r.Register(TypeEmail, emailHandler{})
	r.Register(TypeURL, urlHandler{})
	r.Register(TypeUUID, uuidHandler{})
	r.Register(TypeDate, dateHandler{})
	r.Register(TypeDateTime, dateTimeHandler{})
}
