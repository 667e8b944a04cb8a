package toolbar

import "weak"

// Action is the capability bound to an item. Invoke reports whether
// anything was dispatched; an action whose target is gone returns false.
type Action interface {
	Invoke(sender *Toolbar) bool
}

// ActionFunc adapts a plain function to Action.
type ActionFunc func(sender *Toolbar)

// Invoke calls f.
func (f ActionFunc) Invoke(sender *Toolbar) bool {
	if f == nil {
		return false
	}
	f(sender)
	return true
}

type weakAction[T any] struct {
	owner  weak.Pointer[T]
	method func(owner *T, sender *Toolbar)
}

// WeakAction binds method to owner without keeping owner alive. The
// owner is resolved at call time and the call is skipped once it has
// been collected.
func WeakAction[T any](owner *T, method func(owner *T, sender *Toolbar)) Action {
	return weakAction[T]{owner: weak.Make(owner), method: method}
}

func (a weakAction[T]) Invoke(sender *Toolbar) bool {
	owner := a.owner.Value()
	if owner == nil || a.method == nil {
		return false
	}
	a.method(owner, sender)
	return true
}
