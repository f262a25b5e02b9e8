// Package state holds reducer-driven containers mirroring fetched content
// for the session: auth, posts, categories and tags.
package state

import "sync"

// Action is a state transition request. Type names follow "slice/verb".
type Action interface {
	Type() string
}

// Reducer computes the next state. It must not mutate its input; slices in
// the returned state are always freshly allocated when they change.
type Reducer[S any] func(S, Action) S

// Store serializes dispatches to one reducer and notifies subscribers.
type Store[S any] struct {
	mu        sync.Mutex
	state     S
	reduce    Reducer[S]
	listeners map[int]func(S)
	nextID    int
}

// NewStore returns a Store starting at initial.
func NewStore[S any](initial S, reduce Reducer[S]) *Store[S] {
	return &Store[S]{
		state:     initial,
		reduce:    reduce,
		listeners: make(map[int]func(S)),
	}
}

// State returns the current state. Callers must treat it as read-only.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the resulting state. Subscribers run after
// the lock is released, in no particular order.
func (s *Store[S]) Dispatch(a Action) S {
	s.mu.Lock()
	s.state = s.reduce(s.state, a)
	next := s.state
	fns := make([]func(S), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return next
}

// Subscribe registers fn to run after every dispatch and returns a function
// that removes it.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func replaceByID[T any](items []T, id func(T) string, item T) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = item
			return out
		}
	}
	return items
}

func removeByID[T any](items []T, id func(T) string, target string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}

func copyOf[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
