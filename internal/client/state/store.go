// Package state provee un contenedor de estado explícito: snapshots
// inmutables y suscripción a cambios. Las vistas derivadas se
// recalculan como funciones puras sobre el snapshot, nunca se mutan.
package state

import "sync"

type Store[S any] struct {
	mu     sync.RWMutex
	state  S
	nextID int
	subs   map[int]func(S)
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{
		state: initial,
		subs:  make(map[int]func(S)),
	}
}

// Snapshot devuelve el estado actual por valor.
func (s *Store[S]) Snapshot() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Update reemplaza el estado con el resultado de fn y notifica a los
// suscriptores con el nuevo snapshot.
func (s *Store[S]) Update(fn func(S) S) {
	s.mu.Lock()
	s.state = fn(s.state)
	next := s.state
	subs := make([]func(S), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
}

// Subscribe registra un callback de cambio y devuelve la función para
// cancelar la suscripción.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
