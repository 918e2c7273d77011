// Package config loads registry settings from TOML or YAML files with
// environment variable overrides, and builds configured registries from
// them. The bindings table in a settings file is the caller-supplied
// mapping that replaces runtime type loading: each entry maps a subject
// to a handler name resolved through a catalog.
package config
