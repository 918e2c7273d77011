// Package catalog maps fully qualified handler names to factory
// functions. It stands in for runtime class loading: callers register
// default constructors under "namespace.Name" keys, and resolvers ask
// the catalog whether a name exists and construct instances from it.
// A process-wide default catalog supports registration from init()
// functions.
package catalog
