package collection

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/cellparty/cell"
	"github.com/delaneyj/cellparty/emitter"
)

type MapInsert[K comparable, V any] struct {
	Key   K
	Value *cell.Mut[V]
}

// Map is a keyed collection of mutable cells. Iteration follows insertion
// order of the keys currently present.
type Map[K comparable, V any] struct {
	cells    *cell.Mut[map[K]*cell.Mut[V]]
	order    []K
	size     cell.Cell[int]
	events   dispatcher
	clearing mapset.Set[K] // keys a running Clear has yet to remove

	OnInsert emitter.Emitter[MapInsert[K, V]]
	OnDelete emitter.Emitter[K]
}

var _ Iterable[cell.Cell[int], string] = (*Map[string, int])(nil)

func NewMap[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{
		cells:    cell.New(map[K]*cell.Mut[V]{}),
		clearing: mapset.NewThreadUnsafeSet[K](),
	}
	m.size = cell.Map[map[K]*cell.Mut[V], int](m.cells, func(cells map[K]*cell.Mut[V]) int {
		return len(cells)
	})
	return m
}

// Size is a read-only cell tracking the number of entries.
func (m *Map[K, V]) Size() cell.Cell[int] {
	return m.size
}

func (m *Map[K, V]) Len() int {
	return len(m.order)
}

func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.order)
}

// Values returns the value cells in key insertion order.
func (m *Map[K, V]) Values() []*cell.Mut[V] {
	cells := m.cells.Value()
	values := make([]*cell.Mut[V], len(m.order))
	for i, k := range m.order {
		values[i] = cells[k]
	}
	return values
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.cells.Value()[key]
	return ok
}

func (m *Map[K, V]) Cell(key K) (*cell.Mut[V], bool) {
	c, ok := m.cells.Value()[key]
	return c, ok
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	c, ok := m.cells.Value()[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.Value(), true
}

// Update mutates the value stored under key in place. It reports false if
// the key is absent.
func (m *Map[K, V]) Update(key K, mutator func(value *V)) bool {
	c, ok := m.cells.Value()[key]
	if !ok {
		return false
	}
	c.Update(mutator)
	return true
}

// Set overwrites an existing value in place, or adds the key and emits an
// insert.
func (m *Map[K, V]) Set(key K, value V) {
	if c, ok := m.cells.Value()[key]; ok {
		c.SetValue(value)
		return
	}
	m.clearing.Remove(key)
	c := cell.New(value)
	deliver := m.events.reserve()
	m.cells.Update(func(cells *map[K]*cell.Mut[V]) {
		(*cells)[key] = c
		m.order = append(m.order, key)
	})
	deliver(func() {
		m.OnInsert.Emit(MapInsert[K, V]{Key: key, Value: c})
	})
}

func (m *Map[K, V]) Delete(key K) bool {
	if !m.Has(key) {
		return false
	}
	deliver := m.events.reserve()
	m.cells.Update(func(cells *map[K]*cell.Mut[V]) {
		m.remove(*cells, key)
	})
	deliver(func() {
		m.OnDelete.Emit(key)
	})
	return true
}

func (m *Map[K, V]) remove(cells map[K]*cell.Mut[V], key K) {
	delete(cells, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// Clear emits a delete for every key, in insertion order, and only then
// removes those keys from the store. A key that an observer deletes and sets
// again while the deletes are delivered is kept.
func (m *Map[K, V]) Clear() {
	keys := m.Keys()
	for _, key := range keys {
		m.clearing.Add(key)
	}
	for _, key := range keys {
		if !m.clearing.Contains(key) || !m.Has(key) {
			continue
		}
		m.events.reserve()(func() {
			m.OnDelete.Emit(key)
		})
	}
	m.cells.Update(func(cells *map[K]*cell.Mut[V]) {
		for _, key := range keys {
			if m.clearing.Contains(key) {
				m.clearing.Remove(key)
				m.remove(*cells, key)
			}
		}
	})
}

func (m *Map[K, V]) Observe(
	insert func(index int, value cell.Cell[V], key K),
	remove func(index int),
) (stop func()) {
	return m.ObserveSession(insert, remove).Close
}

// ObserveSession replays the current entries through insert and then
// forwards inserts and deletes until the session is closed. Keys a running
// Clear is about to remove are not replayed.
func (m *Map[K, V]) ObserveSession(
	insert func(index int, value cell.Cell[V], key K),
	remove func(index int),
) *MapSession[K, V] {
	s := &MapSession[K, V]{
		events: &m.events,
		since:  m.events.version,
		insert: insert,
		remove: remove,
	}

	var values []*cell.Mut[V]
	for _, key := range m.order {
		if m.clearing.Contains(key) {
			continue
		}
		s.keys = append(s.keys, key)
		values = append(values, m.cells.Value()[key])
	}
	keys := slices.Clone(s.keys)

	s.onInsert = m.OnInsert.Subscribe(s.handleInsert)
	s.onDelete = m.OnDelete.Subscribe(s.handleDelete)
	m.events.hold(func() {
		for i, key := range keys {
			insert(i, values[i], key)
		}
	})
	return s
}

// MapSession is one observer's view of a Map. Its key list records the
// order in which this observer was told about keys.
type MapSession[K comparable, V any] struct {
	events   *dispatcher
	since    uint64
	keys     []K
	insert   func(index int, value cell.Cell[V], key K)
	remove   func(index int)
	onInsert *emitter.Subscription[MapInsert[K, V]]
	onDelete *emitter.Subscription[K]
}

func (s *MapSession[K, V]) handleInsert(e MapInsert[K, V]) emitter.Result {
	if s.events.stale(s.since) {
		return emitter.Continue
	}
	index := len(s.keys)
	s.keys = append(s.keys, e.Key)
	s.insert(index, e.Value, e.Key)
	return emitter.Continue
}

func (s *MapSession[K, V]) handleDelete(key K) emitter.Result {
	if s.events.stale(s.since) {
		return emitter.Continue
	}
	index := slices.Index(s.keys, key)
	if index < 0 {
		return emitter.Continue
	}
	s.keys = slices.Delete(s.keys, index, index+1)
	s.remove(index)
	return emitter.Continue
}

// Keys returns the keys in the order this observer received them.
func (s *MapSession[K, V]) Keys() []K {
	return slices.Clone(s.keys)
}

func (s *MapSession[K, V]) Close() {
	s.onInsert.Stop()
	s.onDelete.Stop()
}

func (s *MapSession[K, V]) Closed() bool {
	return !s.onInsert.Active()
}
