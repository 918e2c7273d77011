package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/typereg/pkg/errors"
)

// Factory constructs a new handler instance. It is the catalog's
// equivalent of a default constructor: no arguments, and any failure is
// reported as an error rather than a panic.
type Factory func() (interface{}, error)

// Catalog is a thread-safe mapping from fully qualified handler names
// to factories.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory

	// constructions counts successful New calls, so tests can observe
	// whether a lookup path re-constructed or reused an instance.
	constructions int
}

// New creates an empty Catalog
func New() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under the given fully qualified name
func (c *Catalog) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "catalog name cannot be empty")
	}
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "factory for '%s' cannot be nil", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "factory '%s' is already registered", name)
	}

	c.factories[name] = factory
	return nil
}

// Has checks if a factory is registered under the given name
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.factories[name]
	return exists
}

// NewInstance constructs a fresh instance for the given name.
// It returns ErrNotFound when no factory is registered, and
// ErrConstruction when the factory itself fails.
func (c *Catalog) NewInstance(name string) (interface{}, error) {
	c.mu.RLock()
	factory, exists := c.factories[name]
	c.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrNotFound, "no factory registered for '%s'", name)
	}

	instance, err := factory()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConstruction, "factory for '%s' failed", name)
	}

	c.mu.Lock()
	c.constructions++
	c.mu.Unlock()

	return instance, nil
}

// Remove removes the factory registered under the given name
func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[name]; !exists {
		return errors.Newf(errors.ErrNotFound, "factory '%s' not found in catalog", name)
	}

	delete(c.factories, name)
	return nil
}

// List returns all registered names in sorted order
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Clear removes all factories from the catalog
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories = make(map[string]Factory)
	c.constructions = 0
}

// Count returns the number of registered factories
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.factories)
}

// Constructions returns the number of successful NewInstance calls
func (c *Catalog) Constructions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.constructions
}

// MustRegister registers a factory and panics if registration fails.
// This is useful for init() functions where registration errors are
// programming errors.
func MustRegister(c *Catalog, name string, factory Factory) {
	if err := c.Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
