// Package store holds the authoritative in-memory order collection.
// Handlers run in parallel, so every access goes through one mutex to keep
// ID allocation and read-modify-write cycles atomic.
package store

import (
	"sync"

	"tableside/internal/models"
)

type Store struct {
	mu     sync.Mutex
	orders []models.Order
	nextID int64
}

func New() *Store {
	return &Store{nextID: 1}
}

// Insert allocates a fresh ID for o, appends it and returns the stored
// order. IDs are strictly increasing and never reused, even after the
// order is removed.
func (s *Store) Insert(o models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID
	s.nextID++
	s.orders = append(s.orders, o.Clone())
	return o
}

// Update applies fn to the stored order under the lock and returns a copy
// of the result. The boolean reports whether the order exists.
func (s *Store) Update(id int64, fn func(*models.Order)) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			fn(&s.orders[i])
			return s.orders[i].Clone(), true
		}
	}
	return models.Order{}, false
}

// Remove deletes the order entirely, preserving the insertion order of the
// remaining collection, and returns a snapshot of the removed order.
func (s *Store) Remove(id int64) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			removed := s.orders[i]
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return removed, true
		}
	}
	return models.Order{}, false
}

// Snapshot returns the full collection in creation order. The result
// shares no mutable state with the store.
func (s *Store) Snapshot() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
