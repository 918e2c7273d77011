package registry

import (
	"github.com/arthur-debert/typereg/pkg/errors"
)

// Strategy names reported in resolution traces
const (
	StrategyBinding           = "binding"
	StrategyRegistryNamespace = "registry-namespace"
	StrategySubjectNamespace  = "subject-namespace"
	StrategyResolver          = "resolver"
)

// Attempt records one failed resolution strategy for a subject. The
// error carries the sub-cause: RESOLUTION when no handler could be
// located, CONSTRUCTION when one existed but failed to construct.
type Attempt struct {
	// Strategy names the resolution strategy that was tried
	Strategy string

	// Candidate is the fully qualified handler name that was tried
	Candidate string

	// Err is the failure that made resolution fall through
	Err error
}

// Find locates the handler for the subject. Under Singleton scope the
// shared bound or resolved instance is returned; under Prototype scope
// a fresh instance of the same concrete kind is constructed per call.
//
// All failure collapses into a single NotFound error carrying the
// attempted strategies in its details. Find never panics.
func (r *Registry[H]) Find(s Subject) (H, error) {
	handler, attempts, err := r.find(s)
	if err != nil {
		var zero H
		notFound := errors.Newf(errors.ErrNotFound, "no handler for '%s'", s)
		if len(attempts) > 0 {
			notFound = notFound.WithDetail("attempts", attemptSummaries(attempts))
		}
		return zero, notFound
	}
	return handler, nil
}

// FindTrace behaves like Find but also returns the chain of attempted
// and failed strategies, so callers can diagnose why resolution fell
// through or failed.
func (r *Registry[H]) FindTrace(s Subject) (H, []Attempt, error) {
	handler, attempts, err := r.find(s)
	if err != nil {
		var zero H
		return zero, attempts, errors.Wrapf(err, errors.ErrNotFound, "no handler for '%s'", s)
	}
	return handler, attempts, nil
}

func (r *Registry[H]) find(s Subject) (H, []Attempt, error) {
	var zero H

	if s.IsZero() {
		return zero, nil, errors.New(errors.ErrResolution, "subject is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.bindings[s]

	var attempts []Attempt
	if b == nil {
		b, attempts = r.resolve(s)
		if b != nil && r.scope == ScopeSingleton {
			// Memoize so subsequent singleton lookups skip re-resolution
			r.bindings[s] = b
			r.logger.Debug().Stringer("subject", s).Msg("Memoized resolved handler")
		}
	}

	if b == nil {
		return zero, attempts, errors.Newf(errors.ErrResolution, "no handler resolved for '%s'", s)
	}

	if r.scope == ScopeSingleton {
		if !b.hasInstance {
			instance, err := b.factory()
			if err != nil {
				attempts = append(attempts, Attempt{
					Strategy:  StrategyBinding,
					Candidate: s.Qualified(),
					Err:       errors.Wrap(err, errors.ErrConstruction, "singleton construction failed"),
				})
				return zero, attempts, err
			}
			b.instance = instance
			b.hasInstance = true
		}
		return b.instance, attempts, nil
	}

	// Prototype: the binding is only a template for which concrete kind
	// to construct; every call yields a distinct instance.
	instance, err := b.factory()
	if err != nil {
		attempts = append(attempts, Attempt{
			Strategy:  StrategyBinding,
			Candidate: s.Qualified(),
			Err:       errors.Wrap(err, errors.ErrConstruction, "prototype construction failed"),
		})
		return zero, attempts, err
	}
	return instance, attempts, nil
}

// resolve runs the convention strategies in order and returns the first
// successful binding, together with the failed attempts along the way.
// Each strategy both locates a candidate and constructs an instance
// from it, so construction failures fall through to the next strategy.
// Callers must hold r.mu.
func (r *Registry[H]) resolve(s Subject) (*binding[H], []Attempt) {
	var attempts []Attempt

	if r.postfix != "" && r.cat != nil {
		type candidate struct {
			strategy  string
			namespace string
		}

		candidates := []candidate{{StrategyRegistryNamespace, r.namespace}}
		if r.subjectFallback {
			candidates = append(candidates, candidate{StrategySubjectNamespace, s.Namespace})
		}

		for _, c := range candidates {
			name := Subject{Namespace: c.namespace, Name: s.Name + r.postfix}.Qualified()

			b, err := r.resolveFromCatalog(name)
			if err != nil {
				attempts = append(attempts, Attempt{Strategy: c.strategy, Candidate: name, Err: err})
				r.logger.Debug().
					Stringer("subject", s).
					Str("strategy", c.strategy).
					Str("candidate", name).
					Err(err).
					Msg("Resolution strategy failed")
				continue
			}

			r.logger.Debug().
				Stringer("subject", s).
				Str("strategy", c.strategy).
				Str("candidate", name).
				Msg("Resolved handler by convention")
			return b, attempts
		}
	}

	for _, resolver := range r.resolvers {
		factory, err := resolver(s)
		if err != nil || factory == nil {
			if err == nil {
				err = errors.Newf(errors.ErrResolution, "resolver returned no factory for '%s'", s)
			}
			attempts = append(attempts, Attempt{Strategy: StrategyResolver, Candidate: s.Qualified(), Err: err})
			continue
		}

		instance, err := factory()
		if err != nil {
			attempts = append(attempts, Attempt{
				Strategy:  StrategyResolver,
				Candidate: s.Qualified(),
				Err:       errors.Wrap(err, errors.ErrConstruction, "resolver factory failed"),
			})
			continue
		}

		return &binding[H]{factory: factory, instance: instance, hasInstance: true}, attempts
	}

	return nil, attempts
}

// resolveFromCatalog locates a handler by its fully qualified name and
// constructs an instance, verifying it implements capability H.
func (r *Registry[H]) resolveFromCatalog(name string) (*binding[H], error) {
	instance, err := r.cat.NewInstance(name)
	if err != nil {
		return nil, err
	}

	handler, ok := instance.(H)
	if !ok {
		return nil, errors.Newf(errors.ErrResolution, "'%s' does not implement the handler capability", name)
	}

	cat := r.cat
	factory := Factory[H](func() (H, error) {
		var zero H
		fresh, err := cat.NewInstance(name)
		if err != nil {
			return zero, err
		}
		h, ok := fresh.(H)
		if !ok {
			return zero, errors.Newf(errors.ErrResolution, "'%s' does not implement the handler capability", name)
		}
		return h, nil
	})

	return &binding[H]{factory: factory, instance: handler, hasInstance: true}, nil
}

func attemptSummaries(attempts []Attempt) []string {
	summaries := make([]string, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, a.Strategy+" "+a.Candidate+": "+a.Err.Error())
	}
	return summaries
}
