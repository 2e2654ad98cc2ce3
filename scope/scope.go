// Package scope is a hierarchical lifecycle: callbacks registered on a scope
// run when it is initialized and when it is destroyed, and destroying a
// scope destroys its children first.
package scope

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

type Scope struct {
	parent   *Scope
	children mapset.Set[*Scope]
	order    []*Scope
	inits    []func()
	destroys []func()

	initialized bool
	destroyed   bool
}

func New() *Scope {
	return &Scope{
		// the set is only touched from the owning goroutine
		children: mapset.NewThreadUnsafeSet[*Scope](),
	}
}

// Child creates a nested scope. The child is destroyed with its parent but
// must be initialized explicitly.
func (s *Scope) Child() *Scope {
	c := New()
	c.parent = s
	if s.destroyed {
		c.destroyed = true
		return c
	}
	s.children.Add(c)
	s.order = append(s.order, c)
	return c
}

// OnInit registers fn to run on Init. After Init has run, fn runs
// immediately.
func (s *Scope) OnInit(fn func()) {
	if s.initialized {
		fn()
		return
	}
	s.inits = append(s.inits, fn)
}

// OnDestroy registers fn to run on Destroy. On an already destroyed scope
// fn runs immediately.
func (s *Scope) OnDestroy(fn func()) {
	if s.destroyed {
		fn()
		return
	}
	s.destroys = append(s.destroys, fn)
}

func (s *Scope) Init() {
	if s.initialized || s.destroyed {
		return
	}
	s.initialized = true
	inits := s.inits
	s.inits = nil
	for _, fn := range inits {
		fn()
	}
}

// Destroy tears down children in creation order, then runs destroy
// callbacks in reverse registration order, then unlinks from the parent.
func (s *Scope) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true

	for _, child := range slices.Clone(s.order) {
		child.Destroy()
	}
	s.children.Clear()
	s.order = nil

	destroys := s.destroys
	s.destroys = nil
	for i := len(destroys) - 1; i >= 0; i-- {
		destroys[i]()
	}
	s.inits = nil

	if s.parent != nil {
		s.parent.unlink(s)
	}
}

func (s *Scope) unlink(child *Scope) {
	if !s.children.Contains(child) {
		return
	}
	s.children.Remove(child)
	if i := slices.Index(s.order, child); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Scope) Initialized() bool {
	return s.initialized
}

func (s *Scope) Destroyed() bool {
	return s.destroyed
}

// Children reports the number of live child scopes.
func (s *Scope) Children() int {
	return s.children.Cardinality()
}
