package callbacks

import (
	"sync"

	"github.com/google/uuid"
)

// Events fans values out to subscribers. A subscriber returning false is removed.
type Events[T any] struct {
	mx   sync.RWMutex
	subs map[string]func(T) bool
	// subscription order, fire keeps it
	order []string
}

func NewEvents[T any]() *Events[T] {
	return &Events[T]{subs: make(map[string]func(T) bool)}
}

func (e *Events[T]) Subscribe(f func(T) bool) string {
	name := uuid.NewString()
	e.SubscribeNamed(name, f)

	return name
}

func (e *Events[T]) SubscribeNamed(name string, f func(T) bool) {
	e.mx.Lock()
	defer e.mx.Unlock()

	if _, ok := e.subs[name]; !ok {
		e.order = append(e.order, name)
	}

	e.subs[name] = f
}

func (e *Events[T]) Unsubscribe(name string) bool {
	e.mx.Lock()
	defer e.mx.Unlock()

	if _, ok := e.subs[name]; !ok {
		return false
	}

	delete(e.subs, name)

	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	return true
}

func (e *Events[T]) Len() int {
	e.mx.RLock()
	defer e.mx.RUnlock()

	return len(e.subs)
}

// Fire calls the subscribers synchronously, so they must not block.
func (e *Events[T]) Fire(data T) {
	e.mx.RLock()
	names := make([]string, len(e.order))
	copy(names, e.order)
	fns := make([]func(T) bool, len(names))

	for i, n := range names {
		fns[i] = e.subs[n]
	}
	e.mx.RUnlock()

	for i, fn := range fns {
		if !fn(data) {
			e.Unsubscribe(names[i])
		}
	}
}
