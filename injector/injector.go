// Package injector resolves named components from a declarative provider
// table. Class providers are constructed lazily, at most once per injector,
// and a construction that requires itself fails with the cycle path.
package injector

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// State is the resolution state of one token.
type State uint8

const (
	Unrequested State = iota
	// InProgress marks a token being constructed. A class with dependencies
	// whose construction failed stays InProgress, so every later request
	// reports a cycle. A failed class without dependencies goes back to
	// Unrequested and is constructed again on the next request.
	InProgress
	Resolved
)

func (s State) String() string {
	switch s {
	case Unrequested:
		return "unrequested"
	case InProgress:
		return "in progress"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type entry struct {
	state State
	value any
}

// Injector is not safe for concurrent use.
type Injector struct {
	providers Providers
	cache     map[Token]*entry
	logger    *slog.Logger
}

type Option func(*Injector)

func WithLogger(logger *slog.Logger) Option {
	return func(inj *Injector) {
		inj.logger = logger
	}
}

// New copies providers; later changes to the map do not affect the
// injector.
func New(providers Providers, opts ...Option) *Injector {
	inj := &Injector{
		providers: maps.Clone(providers),
		cache:     map[Token]*entry{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if inj.providers == nil {
		inj.providers = Providers{}
	}
	for _, opt := range opts {
		opt(inj)
	}
	return inj
}

func (inj *Injector) State(token Token) State {
	if e, ok := inj.cache[token]; ok {
		return e.state
	}
	return Unrequested
}

// Resolve returns the instance for token. An override for token wins and is
// not memoized. Overrides also apply to dependencies resolved by this call.
func (inj *Injector) Resolve(token Token, overrides Overrides) (any, error) {
	if v, ok := overrides[token]; ok {
		return v, nil
	}

	if e, ok := inj.cache[token]; ok {
		if e.state == Resolved {
			return e.value, nil
		}
		inj.logger.Debug("circular dependency", "token", token)
		return nil, &CircularDependencyError{Path: []Token{token}}
	}

	provider, ok := inj.providers[token]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}

	switch p := provider.(type) {
	case *ValueProvider:
		return p.Value, nil
	case *ClassProvider:
		e := &entry{state: InProgress}
		inj.cache[token] = e

		v, err := inj.construct(p, overrides)
		if err != nil {
			if len(p.Deps) == 0 {
				delete(inj.cache, token)
			}
			var cycle *CircularDependencyError
			if errors.As(err, &cycle) {
				return nil, &CircularDependencyError{
					Path: append([]Token{token}, cycle.Path...),
				}
			}
			inj.logger.Debug("construction failed", "token", token, "error", err)
			return nil, err
		}

		e.state = Resolved
		e.value = v
		inj.logger.Debug("constructed", "token", token, "deps", len(p.Deps))
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported provider %T for %s", provider, token)
	}
}

// Inject constructs a one-off instance of class with dependencies from the
// injector. The instance itself is never cached.
func (inj *Injector) Inject(class *ClassProvider, overrides Overrides) (any, error) {
	return inj.construct(class, overrides)
}

func (inj *Injector) construct(class *ClassProvider, overrides Overrides) (any, error) {
	deps := make([]any, len(class.Deps))
	for i, dep := range class.Deps {
		if dep == Self {
			deps[i] = inj
			continue
		}
		v, err := inj.Resolve(dep, overrides)
		if err != nil {
			return nil, err
		}
		deps[i] = v
	}
	return class.New(deps)
}

// Tokens lists the provided tokens in sorted order.
func (inj *Injector) Tokens() []Token {
	tokens := make([]Token, 0, len(inj.providers))
	for token := range inj.providers {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)
	return tokens
}

// Validate checks the provider table without constructing anything. It
// reports class dependencies on unknown tokens and dependency cycles.
func (inj *Injector) Validate() error {
	tokens := inj.Tokens()
	known := mapset.NewThreadUnsafeSet(tokens...)

	var errs []error
	for _, token := range tokens {
		class, ok := inj.providers[token].(*ClassProvider)
		if !ok {
			continue
		}
		for _, dep := range class.Deps {
			if dep != Self && !known.Contains(dep) {
				errs = append(errs, fmt.Errorf("%w: %s depends on %s", ErrUnknownToken, token, dep))
			}
		}
	}

	done := mapset.NewThreadUnsafeSet[Token]()
	for _, token := range tokens {
		var cycle *CircularDependencyError
		if err := inj.findCycle(token, nil, mapset.NewThreadUnsafeSet[Token](), done); errors.As(err, &cycle) {
			errs = append(errs, cycle)
			// report each cycle once, not once per member
			for _, t := range cycle.Path {
				done.Add(t)
			}
		}
	}
	return errors.Join(errs...)
}

func (inj *Injector) findCycle(token Token, path []Token, visiting, done mapset.Set[Token]) error {
	path = append(path, token)
	if visiting.Contains(token) {
		start := slices.Index(path, token)
		return &CircularDependencyError{Path: slices.Clone(path[start:])}
	}
	if done.Contains(token) {
		return nil
	}
	class, ok := inj.providers[token].(*ClassProvider)
	if !ok {
		done.Add(token)
		return nil
	}

	visiting.Add(token)
	for _, dep := range class.Deps {
		if dep == Self {
			continue
		}
		if err := inj.findCycle(dep, path, visiting, done); err != nil {
			return err
		}
	}
	visiting.Remove(token)
	done.Add(token)
	return nil
}

// Resolve is the typed form of Injector.Resolve.
func Resolve[T any](inj *Injector, token Token, overrides Overrides) (T, error) {
	v, err := inj.Resolve(token, overrides)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := as[T](v)
	if err != nil {
		return t, fmt.Errorf("resolve %s: %w", token, err)
	}
	return t, nil
}

func MustResolve[T any](inj *Injector, token Token) T {
	t, err := Resolve[T](inj, token, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Inject is the typed form of Injector.Inject.
func Inject[T any](inj *Injector, class *ClassProvider, overrides Overrides) (T, error) {
	v, err := inj.Inject(class, overrides)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v)
}
