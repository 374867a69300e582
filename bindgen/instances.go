package bindgen

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a handle has no live instance, e.g. after
// the host runtime already dropped it.
var ErrNotFound = errors.New("handle not found")

// Store hands out numeric handles to instances shared across the FFI
// boundary, so raw pointers never cross it. Handles are allocated from a
// monotonic counter starting at 1; 0 is never a valid handle.
type Store[T any] struct {
	mu   sync.Mutex
	next uint32
	vals map[uint32]T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{next: 1, vals: map[uint32]T{}}
}

// Insert stores v and returns its handle.
func (s *Store[T]) Insert(v T) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.next
	s.next++
	s.vals[h] = v
	return h
}

// With runs f with the instance for handle while holding the store lock.
// A panic inside f is converted to an ordinary error and the store stays
// usable afterwards, so one failed operation cannot permanently disable
// the session. The instance's mutations are kept only if f returns
// normally.
func (s *Store[T]) With(handle uint32, f func(*T) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vals[handle]
	if !ok {
		return ErrNotFound
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("instance operation panicked: %v", r)
		}
	}()
	err = f(&v)
	s.vals[handle] = v
	return err
}

// Remove drops the instance for handle.
func (s *Store[T]) Remove(handle uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vals[handle]; !ok {
		return ErrNotFound
	}
	delete(s.vals, handle)
	return nil
}

// Len returns the number of live instances.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vals)
}
