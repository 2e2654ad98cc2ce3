package collection

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Mirror keeps a plain slice in step with an Iterable using only the deltas
// it receives. It is what a renderer does with its child nodes, minus the
// nodes.
type Mirror[V, K any] struct {
	items   []V
	keys    []K
	inserts int
	removes int
	stop    func()
}

func NewMirror[V, K any](source Iterable[V, K]) *Mirror[V, K] {
	m := &Mirror[V, K]{}
	m.stop = source.Observe(m.insert, m.remove)
	return m
}

func (m *Mirror[V, K]) insert(index int, item V, key K) {
	m.items = slices.Insert(m.items, index, item)
	m.keys = slices.Insert(m.keys, index, key)
	m.inserts++
}

func (m *Mirror[V, K]) remove(index int) {
	m.items = slices.Delete(m.items, index, index+1)
	m.keys = slices.Delete(m.keys, index, index+1)
	m.removes++
}

func (m *Mirror[V, K]) Items() []V {
	return slices.Clone(m.items)
}

func (m *Mirror[V, K]) Keys() []K {
	return slices.Clone(m.keys)
}

func (m *Mirror[V, K]) Len() int {
	return len(m.items)
}

// Deltas reports how many inserts and removes have been applied, including
// the initial replay.
func (m *Mirror[V, K]) Deltas() (inserts, removes int) {
	return m.inserts, m.removes
}

// Fingerprint hashes the mirrored items in order, using format to turn each
// item into bytes.
func (m *Mirror[V, K]) Fingerprint(format func(item V) string) uint64 {
	return Fingerprint(m.items, format)
}

func (m *Mirror[V, K]) Close() {
	m.stop()
}

// Fingerprint is an order-sensitive xxhash digest of values.
func Fingerprint[T any](values []T, format func(value T) string) uint64 {
	d := xxhash.New()
	for _, v := range values {
		d.WriteString(format(v))
		d.Write([]byte{0})
	}
	return d.Sum64()
}
