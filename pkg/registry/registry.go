package registry

import (
	"reflect"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/typereg/pkg/catalog"
	"github.com/arthur-debert/typereg/pkg/errors"
	"github.com/arthur-debert/typereg/pkg/logging"
)

// Factory constructs a new handler instance of a concrete kind
type Factory[H any] func() (H, error)

// Resolver is one resolution convention: given a subject, it returns a
// factory for the handler that should serve it, or an error to fall
// through to the next convention.
type Resolver[H any] func(s Subject) (Factory[H], error)

// binding holds an explicit or memoized handler for a subject. The
// factory is always present so Prototype scope can construct fresh
// instances of the same concrete kind.
type binding[H any] struct {
	factory     Factory[H]
	instance    H
	hasInstance bool
}

// Registry maps subjects to handlers implementing capability H.
// It is safe for concurrent use.
type Registry[H any] struct {
	mu       sync.Mutex
	bindings map[Subject]*binding[H]

	scope           Scope
	postfix         string
	namespace       string
	subjectFallback bool

	cat       *catalog.Catalog
	resolvers []Resolver[H]
	logger    zerolog.Logger
}

// Option configures a Registry at construction time
type Option[H any] func(*Registry[H])

// WithScope sets the initial scope
func WithScope[H any](s Scope) Option[H] {
	return func(r *Registry[H]) { r.scope = s }
}

// WithNamespace sets the registry's own namespace, the first location
// searched during convention-based resolution.
func WithNamespace[H any](ns string) Option[H] {
	return func(r *Registry[H]) { r.namespace = ns }
}

// WithPostfix enables convention-based resolution with the given name
// postfix, like "Renderer" or "Editor".
func WithPostfix[H any](postfix string) Option[H] {
	return func(r *Registry[H]) { r.postfix = postfix }
}

// WithSubjectFallback controls whether resolution falls back to the
// subject's own namespace. Enabled by default.
func WithSubjectFallback[H any](enabled bool) Option[H] {
	return func(r *Registry[H]) { r.subjectFallback = enabled }
}

// WithCatalog sets the catalog consulted during convention-based
// resolution. Defaults to the process-wide catalog.
func WithCatalog[H any](c *catalog.Catalog) Option[H] {
	return func(r *Registry[H]) { r.cat = c }
}

// WithResolvers appends caller-supplied resolution conventions, tried
// in order after the namespace conventions.
func WithResolvers[H any](resolvers ...Resolver[H]) Option[H] {
	return func(r *Registry[H]) { r.resolvers = append(r.resolvers, resolvers...) }
}

// New creates an empty Registry with Singleton scope and no
// conventional postfix.
func New[H any](opts ...Option[H]) *Registry[H] {
	r := &Registry[H]{
		bindings:        make(map[Subject]*binding[H]),
		scope:           ScopeSingleton,
		subjectFallback: true,
		cat:             catalog.Default(),
		logger:          logging.GetLogger("registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a handler instance to the subject, overwriting any
// previous binding. A kind-template factory is derived from the
// instance so Prototype scope can construct fresh handlers of the same
// concrete kind.
func (r *Registry[H]) Register(s Subject, handler H) error {
	if s.IsZero() {
		return errors.New(errors.ErrInvalidInput, "subject cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[s] = &binding[H]{
		factory:     kindFactory(handler),
		instance:    handler,
		hasInstance: true,
	}
	r.logger.Debug().Stringer("subject", s).Msg("Registered handler instance")
	return nil
}

// RegisterFactory binds a handler factory to the subject, overwriting
// any previous binding. Under Singleton scope the shared instance is
// constructed lazily on the first Find.
func (r *Registry[H]) RegisterFactory(s Subject, factory Factory[H]) error {
	if s.IsZero() {
		return errors.New(errors.ErrInvalidInput, "subject cannot be empty")
	}
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "factory for '%s' cannot be nil", s)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[s] = &binding[H]{factory: factory}
	r.logger.Debug().Stringer("subject", s).Msg("Registered handler factory")
	return nil
}

// SetScope sets the scope for subsequent Find calls. Existing bindings
// are kept.
func (r *Registry[H]) SetScope(s Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scope = s
}

// SetConventionalPostfix enables or changes convention-based
// resolution. The empty string disables it, restricting Find to
// explicit bindings.
func (r *Registry[H]) SetConventionalPostfix(postfix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postfix = postfix
}

// Has checks if the subject has an explicit or memoized binding
func (r *Registry[H]) Has(s Subject) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.bindings[s]
	return exists
}

// List returns all bound subjects sorted by qualified name
func (r *Registry[H]) List() []Subject {
	r.mu.Lock()
	defer r.mu.Unlock()

	subjects := make([]Subject, 0, len(r.bindings))
	for s := range r.bindings {
		subjects = append(subjects, s)
	}

	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].Qualified() < subjects[j].Qualified()
	})
	return subjects
}

// Remove removes the binding for the subject
func (r *Registry[H]) Remove(s Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[s]; !exists {
		return errors.Newf(errors.ErrNotFound, "no binding for '%s'", s)
	}

	delete(r.bindings, s)
	return nil
}

// Clear removes all bindings
func (r *Registry[H]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = make(map[Subject]*binding[H])
}

// Count returns the number of bound subjects
func (r *Registry[H]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.bindings)
}

// kindFactory derives a default-construction factory from a handler
// instance, treating the instance as a template for its concrete kind.
func kindFactory[H any](template H) Factory[H] {
	return func() (H, error) {
		var zero H

		t := reflect.TypeOf(template)
		if t == nil {
			return zero, errors.New(errors.ErrConstruction, "cannot derive a kind from a nil handler")
		}

		var fresh reflect.Value
		if t.Kind() == reflect.Ptr {
			fresh = reflect.New(t.Elem())
		} else {
			fresh = reflect.New(t).Elem()
		}

		handler, ok := fresh.Interface().(H)
		if !ok {
			return zero, errors.Newf(errors.ErrConstruction, "fresh %s does not implement the handler capability", t)
		}
		return handler, nil
	}
}
