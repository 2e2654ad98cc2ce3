package injector

// Token names an entry in a provider table.
type Token string

// Self is the reserved dependency token that yields the injector itself.
const Self Token = "injector"

// Provider is either a literal value or a class descriptor.
type Provider interface {
	provider()
}

type ValueProvider struct {
	Value any
}

func (*ValueProvider) provider() {}

// Value provides v as is. It is never constructed or cached.
func Value(v any) *ValueProvider {
	return &ValueProvider{Value: v}
}

// Constructor builds an instance from resolved dependencies, given in the
// order of ClassProvider.Deps.
type Constructor func(deps []any) (any, error)

type ClassProvider struct {
	Deps []Token
	New  Constructor
}

func (*ClassProvider) provider() {}

func Class(deps []Token, construct Constructor) *ClassProvider {
	return &ClassProvider{Deps: deps, New: construct}
}

func Class0[R any](fn func() (R, error)) *ClassProvider {
	return &ClassProvider{
		New: func(deps []any) (any, error) {
			r, err := fn()
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	}
}

type Providers map[Token]Provider

// Overrides supplies per-call replacements for tokens.
type Overrides map[Token]any
