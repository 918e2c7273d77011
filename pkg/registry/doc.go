// Package registry resolves type-specific handlers for subject types.
// A Registry maps subjects to a single handler implementing a common
// capability, so a framework can invoke type-specific behavior without
// knowing concrete subject types and without subjects implementing the
// capability themselves.
//
// Handlers are bound explicitly with Register, or resolved on demand by
// naming convention: "<namespace>.<SubjectName><Postfix>" looked up in a
// catalog, first in the registry's own namespace, then in the subject's.
// The registry scope decides whether resolved handlers are shared
// (Singleton) or freshly constructed per lookup (Prototype).
package registry
