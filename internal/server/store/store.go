// Package store keeps a resource collection in process memory.
//
// Records are keyed by id and remembered in insertion order, which is the
// order list reads return before any sorting. Writers are serialized, readers
// run concurrently. Nothing is persisted: a restart brings back the seeds.
package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/server/models"
)

// Store is an in-memory collection of records of type T.
type Store[T models.Record[T]] struct {
	mu     sync.RWMutex
	items  map[int]T
	order  []int
	nextID int
}

// New returns a store holding seed. Ids of later appends continue after the
// largest seed id.
func New[T models.Record[T]](seed []T) *Store[T] {
	s := &Store[T]{}
	s.load(seed)
	return s
}

func (s *Store[T]) load(seed []T) {
	s.items = make(map[int]T, len(seed))
	s.order = make([]int, 0, len(seed))
	s.nextID = 1

	for _, rec := range seed {
		id := rec.GetID()
		if _, dup := s.items[id]; !dup {
			s.order = append(s.order, id)
		}
		s.items[id] = rec
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
}

// All returns a snapshot of every record in insertion order.
func (s *Store[T]) All(ctx context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store[T]) FindByID(ctx context.Context, id int) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		var zero T
		return zero, common.ErrorNotFound
	}
	return rec, nil
}

// Find returns the first record, in insertion order, matching pred.
func (s *Store[T]) Find(ctx context.Context, pred func(T) bool) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if rec := s.items[id]; pred(rec) {
			return rec, nil
		}
	}
	var zero T
	return zero, common.ErrorNotFound
}

// Append stores rec under a freshly assigned id and returns the stored copy.
// Ids are never reused, even after deletes.
func (s *Store[T]) Append(ctx context.Context, rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec = rec.WithID(s.nextID)
	s.nextID++

	s.items[rec.GetID()] = rec
	s.order = append(s.order, rec.GetID())
	return rec
}

// Replace runs merge on the stored record and saves the result under the
// same id. The read and write happen under one lock.
func (s *Store[T]) Replace(ctx context.Context, id int, merge func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	current, ok := s.items[id]
	if !ok {
		return zero, common.ErrorNotFound
	}

	next, err := merge(current)
	if err != nil {
		return zero, err
	}
	next = next.WithID(id)

	s.items[id] = next
	return next, nil
}

// RemoveByID deletes the record and returns what was removed.
func (s *Store[T]) RemoveByID(ctx context.Context, id int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[id]
	if !ok {
		var zero T
		return zero, common.ErrorNotFound
	}

	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return rec, nil
}

func (s *Store[T]) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

