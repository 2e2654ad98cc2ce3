package injector

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownToken = errors.New("unknown token")
	ErrTypeMismatch = errors.New("type mismatch")
)

// CircularDependencyError reports a token whose construction required
// itself. Path runs from the outermost token to the repeated one.
type CircularDependencyError struct {
	Path []Token
}

func (e *CircularDependencyError) Error() string {
	parts := make([]string, len(e.Path))
	for i, t := range e.Path {
		parts[i] = string(t)
	}
	return "circular dependency detected: " + strings.Join(parts, " -> ")
}

// as converts a resolved dependency. A nil value yields the zero T.
func as[T any](value any) (T, error) {
	var zero T
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T", ErrTypeMismatch, zero, value)
	}
	return typed, nil
}

func arg[T any](deps []any, i int, token Token) (T, error) {
	v, err := as[T](deps[i])
	if err != nil {
		return v, fmt.Errorf("dependency %d (%s): %w", i, token, err)
	}
	return v, nil
}
