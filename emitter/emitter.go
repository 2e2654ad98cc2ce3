// Package emitter is a small synchronous publish/subscribe primitive with a
// single event type and ordered subscribers.
package emitter

// Result tells the emitter whether to keep delivering the current event.
type Result uint8

const (
	Continue Result = iota
	Stop
)

type Handler[T any] func(event T) Result

// Subscription is the identity of one registered handler. Subscribing the
// same function twice yields two subscriptions, and both fire.
type Subscription[T any] struct {
	emitter *Emitter[T]
	handler Handler[T]
	active  bool
}

// Stop removes the subscription. Safe to call repeatedly, and from inside a
// handler while an emission is in progress.
func (s *Subscription[T]) Stop() {
	if s.active {
		s.emitter.Unobserve(s)
	}
}

func (s *Subscription[T]) Active() bool {
	return s.active
}

// Emitter is not safe for concurrent use. The zero value is ready to use.
type Emitter[T any] struct {
	subs    []*Subscription[T]
	onEmpty func()
}

// OnEmpty sets fn to run each time the last subscription is removed,
// whichever way it was stopped.
func (e *Emitter[T]) OnEmpty(fn func()) {
	e.onEmpty = fn
}

// Emit delivers event to every active subscriber in subscription order until
// one of them returns Stop. Handlers subscribed during the emission are not
// invoked for it; handlers removed during it are skipped.
func (e *Emitter[T]) Emit(event T) {
	// unobserve never mutates this backing array, only replaces it
	subs := e.subs
	for _, sub := range subs {
		if !sub.active {
			continue
		}
		if sub.handler(event) == Stop {
			return
		}
	}
}

func (e *Emitter[T]) Subscribe(handler Handler[T]) *Subscription[T] {
	sub := &Subscription[T]{
		emitter: e,
		handler: handler,
		active:  true,
	}
	e.subs = append(e.subs, sub)
	return sub
}

// Observe subscribes handler and returns a function that unsubscribes it.
func (e *Emitter[T]) Observe(handler Handler[T]) (stop func()) {
	return e.Subscribe(handler).Stop
}

// Listen subscribes a handler that never stops propagation.
func (e *Emitter[T]) Listen(fn func(event T)) (stop func()) {
	return e.Observe(func(event T) Result {
		fn(event)
		return Continue
	})
}

func (e *Emitter[T]) Unobserve(sub *Subscription[T]) {
	if sub == nil || sub.emitter != e || !sub.active {
		return
	}
	sub.active = false
	subs := make([]*Subscription[T], 0, len(e.subs))
	for _, s := range e.subs {
		if s != sub {
			subs = append(subs, s)
		}
	}
	e.subs = subs
	if len(subs) == 0 && e.onEmpty != nil {
		e.onEmpty()
	}
}

// Next returns a channel that receives the next emitted event and is then
// closed. The underlying subscription removes itself after one delivery.
func (e *Emitter[T]) Next() <-chan T {
	ch := make(chan T, 1)
	var sub *Subscription[T]
	sub = e.Subscribe(func(event T) Result {
		sub.Stop()
		ch <- event
		close(ch)
		return Continue
	})
	return ch
}

func (e *Emitter[T]) Len() int {
	return len(e.subs)
}
