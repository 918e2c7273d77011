package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/typereg/pkg/catalog"
	"github.com/arthur-debert/typereg/pkg/errors"
	"github.com/arthur-debert/typereg/pkg/logging"
	"github.com/arthur-debert/typereg/pkg/registry"
)

// envPrefix is the prefix for environment variable overrides, so
// TYPEREG_SCOPE=prototype overrides the "scope" key.
const envPrefix = "TYPEREG_"

// Settings holds the file-configurable state of a registry
type Settings struct {
	// Scope is "singleton" or "prototype"
	Scope string `koanf:"scope" toml:"scope"`

	// Postfix enables convention-based resolution; empty disables it
	Postfix string `koanf:"postfix" toml:"postfix"`

	// Namespace is the registry's own namespace, searched first during
	// convention-based resolution
	Namespace string `koanf:"namespace" toml:"namespace"`

	// SubjectFallback controls the fallback to the subject's namespace
	SubjectFallback bool `koanf:"subject_fallback" toml:"subject_fallback"`

	// Bindings maps qualified subject names to qualified handler names
	// resolved through the catalog
	Bindings map[string]string `koanf:"bindings" toml:"bindings,omitempty"`
}

// defaults returns the built-in settings layer
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"scope":            "singleton",
		"postfix":          "",
		"namespace":        "",
		"subject_fallback": true,
	}
}

// Load reads settings from the given TOML or YAML file, applying
// built-in defaults first and TYPEREG_* environment overrides last.
func Load(path string) (*Settings, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Settings file
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read settings file %s", path)
		}

		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}

		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse settings file %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	}

	// 3. Environment overrides
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// parserFor selects a koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported settings format %s", filepath.Ext(path))
	}
}

// Validate checks that the settings are well formed. Unlike Find-time
// resolution, configuration errors are never swallowed.
func (s *Settings) Validate() error {
	if _, err := registry.ParseScope(s.Scope); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid scope '%s'", s.Scope)
	}

	for subject, handler := range s.Bindings {
		if _, err := registry.ParseSubject(subject); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid binding subject '%s'", subject)
		}
		if handler == "" {
			return errors.Newf(errors.ErrConfigValid, "binding for '%s' has an empty handler name", subject)
		}
	}

	return nil
}

// NewRegistry builds a registry from the settings, resolving every
// bindings entry through the catalog into an explicit factory binding.
func NewRegistry[H any](settings *Settings, cat *catalog.Catalog) (*registry.Registry[H], error) {
	if settings == nil {
		return nil, errors.New(errors.ErrInvalidInput, "settings cannot be nil")
	}
	if cat == nil {
		cat = catalog.Default()
	}

	scope, err := registry.ParseScope(settings.Scope)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid scope '%s'", settings.Scope)
	}

	reg := registry.New[H](
		registry.WithScope[H](scope),
		registry.WithNamespace[H](settings.Namespace),
		registry.WithPostfix[H](settings.Postfix),
		registry.WithSubjectFallback[H](settings.SubjectFallback),
		registry.WithCatalog[H](cat),
	)

	for subjectName, handlerName := range settings.Bindings {
		subject, err := registry.ParseSubject(subjectName)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid binding subject '%s'", subjectName)
		}

		if !cat.Has(handlerName) {
			return nil, errors.Newf(errors.ErrConfigValid, "binding for '%s' names unknown handler '%s'", subjectName, handlerName)
		}

		name := handlerName
		factory := registry.Factory[H](func() (H, error) {
			var zero H
			instance, err := cat.NewInstance(name)
			if err != nil {
				return zero, err
			}
			handler, ok := instance.(H)
			if !ok {
				return zero, errors.Newf(errors.ErrResolution, "'%s' does not implement the handler capability", name)
			}
			return handler, nil
		})

		if err := reg.RegisterFactory(subject, factory); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
