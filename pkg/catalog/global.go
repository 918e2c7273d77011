package catalog

// The default catalog plays the role the classpath does in a reflective
// runtime: one process-wide place where handler constructors become
// discoverable by name. Packages register their handlers in init().
var defaultCatalog = New()

// Default returns the process-wide catalog
func Default() *Catalog {
	return defaultCatalog
}

// Register adds a factory to the default catalog
func Register(name string, factory Factory) error {
	return defaultCatalog.Register(name, factory)
}

// Has checks the default catalog for a registered name
func Has(name string) bool {
	return defaultCatalog.Has(name)
}

// NewInstance constructs an instance from the default catalog
func NewInstance(name string) (interface{}, error) {
	return defaultCatalog.NewInstance(name)
}
