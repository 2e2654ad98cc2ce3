package collection

import "github.com/delaneyj/cellparty/scope"

// Each observes items for as long as s lives. The observation stops when s
// is destroyed.
func Each[V, K any](
	s *scope.Scope,
	items Iterable[V, K],
	insert func(index int, item V, key K),
	remove func(index int),
) {
	if s.Destroyed() {
		return
	}
	s.OnDestroy(items.Observe(insert, remove))
}
