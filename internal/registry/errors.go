// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import "errors"

var (
	// ErrInvalidHandle is returned when a handle does not resolve to an
	// occupied slot: it was never issued, has already been removed, or was
	// issued by a different store.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrCapacityExceeded is returned by Insert when no slot can be
	// allocated: the store has reached its configured cap or the index
	// space is exhausted.
	ErrCapacityExceeded = errors.New("store capacity exceeded")
)
