// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"math"
	"sync"
)

// Handle is an opaque token referencing a value owned by a Store.
// The low 32 bits hold the slot index, the high 32 bits the slot generation
// at the time of issue. Generations start at 1, so the zero Handle can never
// match any slot and doubles as the invalid sentinel across boundaries.
type Handle uint64

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) index() uint32 { return uint32(h) }

func (h Handle) generation() uint32 { return uint32(h >> 32) }

type slot[T any] struct {
	occupied   bool
	generation uint32
	value      T
}

// Store maps handles to exclusively owned values of type T. All operations
// are safe for concurrent use; a single mutex serializes access to the table
// so no caller can observe a slot mid-transition.
type Store[T any] struct {
	mu       sync.Mutex
	slots    []slot[T]
	free     []uint32
	maxSlots uint64
	live     int
}

// Option configures a Store created by NewStore.
type Option func(*options)

type options struct {
	maxSlots uint64
}

// WithMaxSlots caps the number of slots the store may ever grow to.
// The default cap is the full 32-bit index space.
func WithMaxSlots(n uint32) Option {
	return func(o *options) {
		o.maxSlots = uint64(n)
	}
}

// NewStore returns an empty store. The store grows on demand and never
// shrinks; vacated slots are kept on a free list for reuse.
func NewStore[T any](opts ...Option) *Store[T] {
	o := options{maxSlots: math.MaxUint32}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T]{maxSlots: o.maxSlots}
}

// Insert takes ownership of value and returns a fresh handle for it.
// A previously vacated slot is reused when available, otherwise the table
// grows. Returns ErrCapacityExceeded when no slot can be allocated.
func (s *Store[T]) Insert(value T) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if uint64(len(s.slots)) >= s.maxSlots {
			return 0, ErrCapacityExceeded
		}
		s.slots = append(s.slots, slot[T]{generation: 1})
		index = uint32(len(s.slots) - 1)
	}

	sl := &s.slots[index]
	sl.occupied = true
	sl.value = value
	s.live++

	return makeHandle(index, sl.generation), nil
}

// WithValue resolves h and runs fn with a mutable view of the stored value.
// The view is only valid for the duration of the call: fn runs under the
// store lock and must not retain the pointer or call back into the store.
// Returns ErrInvalidHandle if h is stale, foreign, or never issued; otherwise
// returns whatever fn returns.
func (s *Store[T]) WithValue(h Handle, fn func(value *T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, err := s.locate(h)
	if err != nil {
		return err
	}

	return fn(&sl.value)
}

// Remove resolves h, vacates its slot, and returns ownership of the stored
// value to the caller. The slot's generation is bumped before it goes back on
// the free list, so h (and every other handle ever issued for that slot) can
// never resolve again. Returns ErrInvalidHandle under the same conditions as
// WithValue, which makes repeated removal idempotent-by-rejection.
func (s *Store[T]) Remove(h Handle) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	sl, err := s.locate(h)
	if err != nil {
		return zero, err
	}

	value := sl.value
	sl.value = zero
	sl.occupied = false
	s.live--

	// A slot whose generation counter is about to wrap is retired instead of
	// reused, otherwise an ancient handle could alias a future occupant.
	if sl.generation < math.MaxUint32 {
		sl.generation++
		s.free = append(s.free, h.index())
	}

	return value, nil
}

// Len returns the number of live values in the store.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.live
}

// locate must be called with s.mu held.
func (s *Store[T]) locate(h Handle) (*slot[T], error) {
	index := h.index()
	if uint64(index) >= uint64(len(s.slots)) {
		return nil, ErrInvalidHandle
	}

	sl := &s.slots[index]
	if !sl.occupied || sl.generation != h.generation() {
		return nil, ErrInvalidHandle
	}

	return sl, nil
}
