// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InsertAndMutate(t *testing.T) {
	s := NewStore[int]()

	h, err := s.Insert(41)
	require.NoError(t, err)
	require.NotZero(t, h)

	err = s.WithValue(h, func(value *int) error {
		*value++
		return nil
	})
	require.NoError(t, err)

	var got int
	err = s.WithValue(h, func(value *int) error {
		got = *value
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_ZeroHandleIsNeverValid(t *testing.T) {
	s := NewStore[int]()

	_, err := s.Insert(1)
	require.NoError(t, err)

	err = s.WithValue(Handle(0), func(*int) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidHandle)

	_, err = s.Remove(Handle(0))
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestStore_LiveHandlesAreUnique(t *testing.T) {
	s := NewStore[int]()
	seen := make(map[Handle]struct{})

	// Interleave inserts and removals so slot indices get reused.
	var handles []Handle
	for i := 0; i < 100; i++ {
		h, err := s.Insert(i)
		require.NoError(t, err)
		_, duplicate := seen[h]
		require.False(t, duplicate, "handle %#x issued twice", uint64(h))
		seen[h] = struct{}{}
		handles = append(handles, h)

		if i%3 == 0 {
			_, err := s.Remove(handles[len(handles)/2])
			if err == nil {
				handles = append(handles[:len(handles)/2], handles[len(handles)/2+1:]...)
			}
		}
	}
}

func TestStore_RemoveReturnsOwnedValue(t *testing.T) {
	s := NewStore[string]()

	h, err := s.Insert("payload")
	require.NoError(t, err)

	value, err := s.Remove(h)
	require.NoError(t, err)
	assert.Equal(t, "payload", value)
	assert.Equal(t, 0, s.Len())
}

func TestStore_NoResurrection(t *testing.T) {
	s := NewStore[int]()

	h, err := s.Insert(7)
	require.NoError(t, err)

	_, err = s.Remove(h)
	require.NoError(t, err)

	// Every subsequent operation on the removed handle must fail, no matter
	// how many times it is retried.
	for i := 0; i < 3; i++ {
		err = s.WithValue(h, func(*int) error { return nil })
		assert.ErrorIs(t, err, ErrInvalidHandle)

		_, err = s.Remove(h)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	}
}

func TestStore_GenerationGuardsReusedSlot(t *testing.T) {
	s := NewStore[int]()

	h1, err := s.Insert(1)
	require.NoError(t, err)

	_, err = s.Remove(h1)
	require.NoError(t, err)

	// The freed index is reused immediately, so the new handle shares the
	// index with h1 but must carry a different generation.
	h2, err := s.Insert(2)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
	assert.Equal(t, h1.index(), h2.index())
	assert.NotEqual(t, h1.generation(), h2.generation())

	// The stale handle must not alias the new occupant.
	err = s.WithValue(h1, func(*int) error {
		t.Fatal("stale handle resolved to a new occupant")
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidHandle)

	var got int
	err = s.WithValue(h2, func(value *int) error {
		got = *value
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestStore_IdempotentRemove(t *testing.T) {
	s := NewStore[*int]()

	released := 0
	v := new(int)
	h, err := s.Insert(v)
	require.NoError(t, err)

	if got, err := s.Remove(h); err == nil && got != nil {
		released++
	}
	if got, err := s.Remove(h); err == nil && got != nil {
		released++
	}

	assert.Equal(t, 1, released, "value must be released exactly once")
}

func TestStore_CapacityExceeded(t *testing.T) {
	s := NewStore[int](WithMaxSlots(2))

	h1, err := s.Insert(1)
	require.NoError(t, err)
	_, err = s.Insert(2)
	require.NoError(t, err)

	_, err = s.Insert(3)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Freeing a slot makes room again.
	_, err = s.Remove(h1)
	require.NoError(t, err)
	_, err = s.Insert(3)
	assert.NoError(t, err)
}

func TestStore_ScenarioCreateAdvanceDestroy(t *testing.T) {
	s := NewStore[uint64]()

	h, err := s.Insert(100)
	require.NoError(t, err)

	err = s.WithValue(h, func(value *uint64) error {
		*value = 150
		return nil
	})
	require.NoError(t, err)

	_, err = s.Remove(h)
	require.NoError(t, err)

	err = s.WithValue(h, func(value *uint64) error {
		*value = 200
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidHandle)

	_, err = s.Remove(h)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestStore_ConcurrentMutationsAreIsolated(t *testing.T) {
	s := NewStore[int]()

	const clients = 8
	const iterations = 500

	handles := make([]Handle, clients)
	for i := range handles {
		h, err := s.Insert(0)
		require.NoError(t, err)
		handles[i] = h
	}

	var wg sync.WaitGroup
	for _, h := range handles {
		wg.Add(1)
		go func(h Handle) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				err := s.WithValue(h, func(value *int) error {
					*value++
					return nil
				})
				assert.NoError(t, err)
			}
		}(h)
	}
	wg.Wait()

	// Concurrent mutations on distinct handles must not bleed into each
	// other's values.
	for _, h := range handles {
		var got int
		err := s.WithValue(h, func(value *int) error {
			got = *value
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, iterations, got)
	}
}

func TestStore_ConcurrentInsertRemove(t *testing.T) {
	s := NewStore[int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h, err := s.Insert(i)
				if !assert.NoError(t, err) {
					return
				}
				_, err = s.Remove(h)
				assert.NoError(t, err)

				// The handle is gone for everyone, including ourselves.
				assert.ErrorIs(t, s.WithValue(h, func(*int) error { return nil }), ErrInvalidHandle)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, s.Len())
}
