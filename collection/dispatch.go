package collection

// dispatcher delivers structural events in the order the store changed. An
// event raised while another one is being delivered waits until the earlier
// one has reached every observer.
type dispatcher struct {
	pending  []*pendingEvent
	version  uint64
	current  uint64
	draining bool
}

type pendingEvent struct {
	version uint64
	deliver func()
}

// reserve claims the next delivery slot. Call it before changing the store
// and hand the delivery to the returned func once the store has changed.
func (d *dispatcher) reserve() func(deliver func()) {
	d.version++
	e := &pendingEvent{version: d.version}
	d.pending = append(d.pending, e)
	return func(deliver func()) {
		e.deliver = deliver
		d.drain()
	}
}

// hold runs fn with delivery suspended and then delivers what fn raised.
func (d *dispatcher) hold(fn func()) {
	if d.draining {
		fn()
		return
	}
	d.draining = true
	fn()
	d.draining = false
	d.drain()
}

func (d *dispatcher) drain() {
	if d.draining {
		return
	}
	d.draining = true
	defer func() {
		d.draining = false
	}()
	// a reserved slot whose store change is still running blocks the rest
	for len(d.pending) > 0 && d.pending[0].deliver != nil {
		e := d.pending[0]
		d.pending[0] = nil
		d.pending = d.pending[1:]
		d.current = e.version
		e.deliver()
	}
}

// stale reports whether the event being delivered was already part of the
// snapshot a session replayed at version since.
func (d *dispatcher) stale(since uint64) bool {
	return d.current <= since
}
