package injector_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/delaneyj/cellparty/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type config struct {
	name string
}

type repo struct {
	cfg *config
}

type service struct {
	repo *repo
	inj  *injector.Injector
}

func appProviders(constructed map[string]int) injector.Providers {
	return injector.Providers{
		"config": injector.Value(&config{name: "app"}),
		"repo": injector.Class1("config", func(cfg *config) (*repo, error) {
			constructed["repo"]++
			return &repo{cfg: cfg}, nil
		}),
		"service": injector.Class2("repo", injector.Self, func(r *repo, inj *injector.Injector) (*service, error) {
			constructed["service"]++
			return &service{repo: r, inj: inj}, nil
		}),
	}
}

// should return the identical instance on every resolve
func TestSingletonMemoization(t *testing.T) {
	constructed := map[string]int{}
	inj := injector.New(appProviders(constructed))

	assert.Equal(t, injector.Unrequested, inj.State("service"))

	first, err := injector.Resolve[*service](inj, "service", nil)
	require.NoError(t, err)
	second, err := injector.Resolve[*service](inj, "service", nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, inj, first.inj)
	assert.Equal(t, "app", first.repo.cfg.name)
	assert.Equal(t, map[string]int{"repo": 1, "service": 1}, constructed)
	assert.Equal(t, injector.Resolved, inj.State("service"))
	assert.Equal(t, injector.Resolved, inj.State("repo"))
}

// should hand out literal values without caching them
func TestValueProvider(t *testing.T) {
	cfg := &config{name: "literal"}
	inj := injector.New(injector.Providers{"config": injector.Value(cfg)})

	got := injector.MustResolve[*config](inj, "config")
	assert.Same(t, cfg, got)
	assert.Equal(t, injector.Unrequested, inj.State("config"))
}

// should report the cycle path and keep failing on retry
func TestCycleDetection(t *testing.T) {
	type x struct{}
	type y struct{}
	inj := injector.New(injector.Providers{
		"X": injector.Class1("Y", func(*y) (*x, error) { return &x{}, nil }),
		"Y": injector.Class1("X", func(*x) (*y, error) { return &y{}, nil }),
	})

	_, err := inj.Resolve("X", nil)
	var cycle *injector.CircularDependencyError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []injector.Token{"X", "Y", "X"}, cycle.Path)
	assert.EqualError(t, err, "circular dependency detected: X -> Y -> X")

	assert.Equal(t, injector.InProgress, inj.State("X"))
	assert.Equal(t, injector.InProgress, inj.State("Y"))

	_, err = inj.Resolve("X", nil)
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []injector.Token{"X"}, cycle.Path)

	_, err = inj.Resolve("Y", nil)
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []injector.Token{"Y"}, cycle.Path)
}

// should detect a class that depends on itself
func TestSelfCycle(t *testing.T) {
	inj := injector.New(injector.Providers{
		"loop": injector.Class([]injector.Token{"loop"}, func(deps []any) (any, error) {
			return deps[0], nil
		}),
	})
	_, err := inj.Resolve("loop", nil)
	var cycle *injector.CircularDependencyError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []injector.Token{"loop", "loop"}, cycle.Path)
}

// should propagate constructor errors unmodified and leave the token stuck
func TestConstructorError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	inj := injector.New(injector.Providers{
		"dsn": injector.Value("postgres://"),
		"db": injector.Class1("dsn", func(string) (*repo, error) {
			calls++
			return nil, boom
		}),
		"service": injector.Class1("db", func(r *repo) (*service, error) {
			return &service{repo: r}, nil
		}),
	})

	_, err := inj.Resolve("service", nil)
	assert.Same(t, boom, err)
	assert.Equal(t, injector.InProgress, inj.State("db"))

	_, err = inj.Resolve("db", nil)
	var cycle *injector.CircularDependencyError
	assert.ErrorAs(t, err, &cycle)
	assert.Equal(t, 1, calls)
}

// should return overrides directly without memoizing them
func TestOverrides(t *testing.T) {
	constructed := map[string]int{}
	inj := injector.New(appProviders(constructed))

	fake := &repo{cfg: &config{name: "fake"}}
	svc, err := injector.Resolve[*service](inj, "service", injector.Overrides{"service": &service{repo: fake}})
	require.NoError(t, err)
	assert.Same(t, fake, svc.repo)
	assert.Equal(t, injector.Unrequested, inj.State("service"))
	assert.Empty(t, constructed)

	other := &config{name: "other"}
	r, err := injector.Resolve[*repo](inj, "repo", injector.Overrides{"config": other})
	require.NoError(t, err)
	assert.Same(t, other, r.cfg)

	again, err := injector.Resolve[*repo](inj, "repo", nil)
	require.NoError(t, err)
	assert.Same(t, r, again)
}

// should build one-off instances without caching the descriptor
func TestInject(t *testing.T) {
	constructed := map[string]int{}
	inj := injector.New(appProviders(constructed))

	type handler struct {
		svc *service
	}
	class := injector.Class1("service", func(s *service) (*handler, error) {
		return &handler{svc: s}, nil
	})

	a, err := injector.Inject[*handler](inj, class, nil)
	require.NoError(t, err)
	b, err := injector.Inject[*handler](inj, class, nil)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Same(t, a.svc, b.svc)
	assert.Equal(t, 1, constructed["service"])
}

// should fail for tokens without providers
func TestUnknownToken(t *testing.T) {
	inj := injector.New(injector.Providers{
		"service": injector.Class1("missing", func(r *repo) (*service, error) {
			return &service{repo: r}, nil
		}),
	})

	_, err := inj.Resolve("nothing", nil)
	assert.ErrorIs(t, err, injector.ErrUnknownToken)

	_, err = inj.Resolve("service", nil)
	assert.ErrorIs(t, err, injector.ErrUnknownToken)
	assert.Panics(t, func() {
		injector.MustResolve[*service](inj, "nothing")
	})
}

// should report dependencies of the wrong type
func TestTypeMismatch(t *testing.T) {
	inj := injector.New(injector.Providers{
		"port": injector.Value("8080"),
		"server": injector.Class1("port", func(port int) (string, error) {
			return "listening", nil
		}),
	})

	_, err := inj.Resolve("server", nil)
	assert.ErrorIs(t, err, injector.ErrTypeMismatch)

	_, err = injector.Resolve[int](inj, "port", nil)
	assert.ErrorIs(t, err, injector.ErrTypeMismatch)
}

// should not be affected by changes to the provider map after construction
func TestProvidersCopied(t *testing.T) {
	providers := injector.Providers{"a": injector.Value(1)}
	inj := injector.New(providers)
	providers["a"] = injector.Value(2)
	providers["b"] = injector.Value(3)

	assert.Equal(t, 1, injector.MustResolve[int](inj, "a"))
	assert.Equal(t, []injector.Token{"a"}, inj.Tokens())
}

// should validate unknown dependencies and cycles without constructing
func TestValidate(t *testing.T) {
	constructed := map[string]int{}
	assert.NoError(t, injector.New(appProviders(constructed)).Validate())

	never := func(deps []any) (any, error) {
		assert.Fail(t, "validate must not construct")
		return nil, nil
	}
	inj := injector.New(injector.Providers{
		"a":    injector.Class([]injector.Token{"b"}, never),
		"b":    injector.Class([]injector.Token{"c", injector.Self}, never),
		"c":    injector.Class([]injector.Token{"a"}, never),
		"d":    injector.Class([]injector.Token{"ghost"}, never),
		"root": injector.Class([]injector.Token{"a"}, never),
	})
	err := inj.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, injector.ErrUnknownToken)

	var cycle *injector.CircularDependencyError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []injector.Token{"a", "b", "c", "a"}, cycle.Path)
	assert.Equal(t, 1, bytes.Count([]byte(err.Error()), []byte("circular")))
	assert.Empty(t, constructed)
}

// should log construction and cycles at debug level
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inj := injector.New(injector.Providers{
		"X": injector.Class([]injector.Token{"X"}, func(deps []any) (any, error) { return nil, nil }),
		"Y": injector.Class0(func() (int, error) { return 1, nil }),
	}, injector.WithLogger(logger))

	inj.Resolve("Y", nil)
	inj.Resolve("X", nil)
	assert.Contains(t, buf.String(), "constructed")
	assert.Contains(t, buf.String(), "circular dependency")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unrequested", injector.Unrequested.String())
	assert.Equal(t, "in progress", injector.InProgress.String())
	assert.Equal(t, "resolved", injector.Resolved.String())
}

// should construct a failed class without dependencies again on the next request
func TestConstructorErrorWithoutDependencies(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	inj := injector.New(injector.Providers{
		"clock": injector.Class0(func() (int, error) {
			calls++
			if calls == 1 {
				return 0, boom
			}
			return 42, nil
		}),
	})

	_, err := inj.Resolve("clock", nil)
	assert.Same(t, boom, err)
	assert.Equal(t, injector.Unrequested, inj.State("clock"))

	v, err := injector.Resolve[int](inj, "clock", nil)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
	assert.Equal(t, injector.Resolved, inj.State("clock"))
}
