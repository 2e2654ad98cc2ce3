// Package collection holds observable collections that report their own
// structural changes as positional insert/remove deltas.
//
// Each call to Observe opens an independent observation session. The
// session replays the current contents as inserts, then keeps translating
// collection events into positions that are valid for that observer. Array
// sessions hand out one index cell per element; those cells are renumbered
// in place when earlier elements are inserted or removed, so per-row state
// keyed on them stays valid. Map sessions keep a private key list that maps
// deletes back to the position the observer was told about.
//
// Nothing here is safe for concurrent use.
package collection

// Iterable is anything that can replay and stream positional deltas.
type Iterable[V, K any] interface {
	Observe(insert func(index int, item V, key K), remove func(index int)) (stop func())
}
