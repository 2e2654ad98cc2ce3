// Package cell provides single-value reactive containers.
//
// Cells push every change to their observers synchronously. Unlike the
// pull-based signal engines there is no dependency tracking: derived cells
// are built explicitly with Map.
package cell

import "github.com/delaneyj/cellparty/emitter"

// Cell is a read-only view of a reactive value.
type Cell[T any] interface {
	Value() T
	Subscribe(fn func(T)) *emitter.Subscription[T]
	Observe(fn func(T)) (stop func())
	Unobserve(sub *emitter.Subscription[T])
	// GetAndObserve calls fn with the current value, then with every change.
	GetAndObserve(fn func(T)) (stop func())
}

// Mut is a writable cell. It is not safe for concurrent use.
type Mut[T any] struct {
	value   T
	changes emitter.Emitter[T]
}

func New[T any](value T) *Mut[T] {
	return &Mut[T]{value: value}
}

func (c *Mut[T]) Value() T {
	return c.value
}

// SetValue stores value and notifies observers. Values are not compared, so
// observers are notified even when the value is unchanged.
func (c *Mut[T]) SetValue(value T) {
	c.value = value
	c.changes.Emit(value)
}

// Update mutates the value in place and then notifies observers.
func (c *Mut[T]) Update(fn func(value *T)) {
	fn(&c.value)
	c.changes.Emit(c.value)
}

func (c *Mut[T]) Subscribe(fn func(T)) *emitter.Subscription[T] {
	return c.changes.Subscribe(func(v T) emitter.Result {
		fn(v)
		return emitter.Continue
	})
}

func (c *Mut[T]) Observe(fn func(T)) (stop func()) {
	return c.Subscribe(fn).Stop
}

func (c *Mut[T]) Unobserve(sub *emitter.Subscription[T]) {
	c.changes.Unobserve(sub)
}

func (c *Mut[T]) GetAndObserve(fn func(T)) (stop func()) {
	fn(c.value)
	return c.Observe(fn)
}

// Observers reports how many observers are attached.
func (c *Mut[T]) Observers() int {
	return c.changes.Len()
}

type mapped[S, T any] struct {
	source   Cell[S]
	fn       func(S) T
	changes  emitter.Emitter[T]
	upstream func()
}

// Map derives a read-only cell whose value is fn applied to source. The
// derived cell only observes source while it has observers of its own.
func Map[S, T any](source Cell[S], fn func(S) T) Cell[T] {
	return &mapped[S, T]{source: source, fn: fn}
}

func (m *mapped[S, T]) Value() T {
	return m.fn(m.source.Value())
}

func (m *mapped[S, T]) Subscribe(fn func(T)) *emitter.Subscription[T] {
	if m.upstream == nil {
		m.changes.OnEmpty(m.release)
		m.upstream = m.source.Observe(func(v S) {
			m.changes.Emit(m.fn(v))
		})
	}
	return m.changes.Subscribe(func(v T) emitter.Result {
		fn(v)
		return emitter.Continue
	})
}

func (m *mapped[S, T]) Observe(fn func(T)) (stop func()) {
	return m.Subscribe(fn).Stop
}

func (m *mapped[S, T]) Unobserve(sub *emitter.Subscription[T]) {
	m.changes.Unobserve(sub)
}

// release detaches from source once the last observer is gone.
func (m *mapped[S, T]) release() {
	if m.upstream != nil {
		m.upstream()
		m.upstream = nil
	}
}

func (m *mapped[S, T]) GetAndObserve(fn func(T)) (stop func()) {
	fn(m.Value())
	return m.Observe(fn)
}
