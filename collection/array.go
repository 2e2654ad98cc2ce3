package collection

import (
	"slices"

	"github.com/delaneyj/cellparty/cell"
	"github.com/delaneyj/cellparty/emitter"
)

type ArrayInsert[T any] struct {
	Index int
	Item  *cell.Mut[T]
}

// Array is an ordered collection of mutable cells.
type Array[T any] struct {
	cells  *cell.Mut[[]*cell.Mut[T]]
	length cell.Cell[int]
	events dispatcher

	OnInsert emitter.Emitter[ArrayInsert[T]]
	OnRemove emitter.Emitter[int]
}

var _ Iterable[cell.Cell[int], cell.Cell[int]] = (*Array[int])(nil)

func NewArray[T any](initial ...T) *Array[T] {
	cells := make([]*cell.Mut[T], len(initial))
	for i, v := range initial {
		cells[i] = cell.New(v)
	}
	a := &Array[T]{cells: cell.New(cells)}
	a.length = cell.Map[[]*cell.Mut[T], int](a.cells, func(cells []*cell.Mut[T]) int {
		return len(cells)
	})
	return a
}

// Length is a read-only cell tracking the number of elements.
func (a *Array[T]) Length() cell.Cell[int] {
	return a.length
}

func (a *Array[T]) Len() int {
	return len(a.cells.Value())
}

// Items returns the element cells in order. The slice is a copy; the cells
// are not.
func (a *Array[T]) Items() []*cell.Mut[T] {
	return slices.Clone(a.cells.Value())
}

func (a *Array[T]) Values() []T {
	cells := a.cells.Value()
	values := make([]T, len(cells))
	for i, c := range cells {
		values[i] = c.Value()
	}
	return values
}

func (a *Array[T]) At(index int) (*cell.Mut[T], bool) {
	cells := a.cells.Value()
	if index < 0 || index >= len(cells) {
		return nil, false
	}
	return cells[index], true
}

func (a *Array[T]) Find(predicate func(value T, index int) bool) (*cell.Mut[T], bool) {
	for i, c := range a.cells.Value() {
		if predicate(c.Value(), i) {
			return c, true
		}
	}
	return nil, false
}

// Insert places value at index, shifting later elements right. It reports
// false without emitting when index is outside [0, Len()].
func (a *Array[T]) Insert(index int, value T) bool {
	if index < 0 || index > a.Len() {
		return false
	}
	c := cell.New(value)
	deliver := a.events.reserve()
	a.cells.Update(func(cells *[]*cell.Mut[T]) {
		*cells = slices.Insert(*cells, index, c)
	})
	deliver(func() {
		a.OnInsert.Emit(ArrayInsert[T]{Index: index, Item: c})
	})
	return true
}

func (a *Array[T]) Push(value T) {
	a.Insert(a.Len(), value)
}

// PushAll pushes each value in turn, emitting one insert per value.
func (a *Array[T]) PushAll(values ...T) {
	for _, v := range values {
		a.Push(v)
	}
}

// Remove deletes the element at index and returns its value.
func (a *Array[T]) Remove(index int) (T, bool) {
	cells := a.cells.Value()
	if index < 0 || index >= len(cells) {
		var zero T
		return zero, false
	}
	removed := cells[index]
	deliver := a.events.reserve()
	a.cells.Update(func(cells *[]*cell.Mut[T]) {
		*cells = slices.Delete(*cells, index, index+1)
	})
	deliver(func() {
		a.OnRemove.Emit(index)
	})
	return removed.Value(), true
}

// RemoveIf removes every element matching predicate, lowest index first.
// The predicate sees indices as they are after earlier removals.
func (a *Array[T]) RemoveIf(predicate func(value T, index int) bool) int {
	removed := 0
	for i := 0; i < a.Len(); i++ {
		if predicate(a.cells.Value()[i].Value(), i) {
			a.Remove(i)
			removed++
			i--
		}
	}
	return removed
}

// Update replaces the value of an existing element without a structural
// event.
func (a *Array[T]) Update(index int, value T) bool {
	c, ok := a.At(index)
	if !ok {
		return false
	}
	c.SetValue(value)
	return true
}

// UpdateAll reconciles the array with values: surplus elements are removed
// from the tail, the shared prefix is updated in place and missing elements
// are pushed.
func (a *Array[T]) UpdateAll(values []T) {
	for a.Len() > len(values) {
		a.Remove(a.Len() - 1)
	}
	for i := 0; i < a.Len() && i < len(values); i++ {
		a.cells.Value()[i].SetValue(values[i])
	}
	for i := a.Len(); i < len(values); i++ {
		a.Push(values[i])
	}
}

// Clear removes every element from the highest index down.
func (a *Array[T]) Clear() {
	for a.Len() > 0 {
		a.Remove(a.Len() - 1)
	}
}

func (a *Array[T]) Observe(
	insert func(index int, item cell.Cell[T], key cell.Cell[int]),
	remove func(index int),
) (stop func()) {
	return a.ObserveSession(insert, remove).Close
}

// ObserveSession replays the current contents through insert and then
// forwards structural changes until the session is closed. Changes made
// from inside insert during the replay are forwarded once it completes.
func (a *Array[T]) ObserveSession(
	insert func(index int, item cell.Cell[T], key cell.Cell[int]),
	remove func(index int),
) *ArraySession[T] {
	s := &ArraySession[T]{
		events: &a.events,
		since:  a.events.version,
		insert: insert,
		remove: remove,
	}

	cells := a.Items()
	s.indices = make([]*cell.Mut[int], len(cells))
	for i := range cells {
		s.indices[i] = cell.New(i)
	}

	s.onInsert = a.OnInsert.Subscribe(s.handleInsert)
	s.onRemove = a.OnRemove.Subscribe(s.handleRemove)
	a.events.hold(func() {
		for i, c := range cells {
			insert(i, c, s.indices[i])
		}
	})
	return s
}

// ArraySession is one observer's view of an Array. It owns the index cells
// handed to that observer.
type ArraySession[T any] struct {
	events   *dispatcher
	since    uint64
	indices  []*cell.Mut[int]
	insert   func(index int, item cell.Cell[T], key cell.Cell[int])
	remove   func(index int)
	onInsert *emitter.Subscription[ArrayInsert[T]]
	onRemove *emitter.Subscription[int]
}

func (s *ArraySession[T]) handleInsert(e ArrayInsert[T]) emitter.Result {
	if s.events.stale(s.since) {
		return emitter.Continue
	}
	at := min(e.Index, len(s.indices))
	index := cell.New(at)
	s.indices = slices.Insert(s.indices, at, index)
	for i := at + 1; i < len(s.indices); i++ {
		s.indices[i].SetValue(i)
	}
	s.insert(at, e.Item, index)
	return emitter.Continue
}

func (s *ArraySession[T]) handleRemove(index int) emitter.Result {
	if s.events.stale(s.since) || index < 0 || index >= len(s.indices) {
		return emitter.Continue
	}
	s.indices = slices.Delete(s.indices, index, index+1)
	for i := index; i < len(s.indices); i++ {
		s.indices[i].SetValue(i)
	}
	s.remove(index)
	return emitter.Continue
}

// Len is the number of elements this observer currently knows about.
func (s *ArraySession[T]) Len() int {
	return len(s.indices)
}

// Index returns the index cell handed out for position i.
func (s *ArraySession[T]) Index(i int) (cell.Cell[int], bool) {
	if i < 0 || i >= len(s.indices) {
		return nil, false
	}
	return s.indices[i], true
}

// Close stops the session. It is idempotent.
func (s *ArraySession[T]) Close() {
	s.onInsert.Stop()
	s.onRemove.Stop()
}

func (s *ArraySession[T]) Closed() bool {
	return !s.onInsert.Active()
}
