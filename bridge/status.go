// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"errors"

	"github.com/MKhiriev/go-client-bridge/internal/registry"
)

// Boundary status codes. Zero is success; failures are negative so a caller
// without an error channel can branch on the sign.
const (
	// StatusOK reports a completed operation.
	StatusOK int32 = 0

	// StatusInvalidHandle reports a handle that is stale, foreign, or was
	// never issued.
	StatusInvalidHandle int32 = -1

	// StatusInternalError collapses every client-internal failure (bad
	// datagram, out-of-order timestamp, full queue) into one generic code.
	StatusInternalError int32 = -2
)

// InvalidHandle is the reserved sentinel returned by ClientNew on allocation
// failure. No valid handle ever equals it.
const InvalidHandle uint64 = 0

// status translates an internal error into a boundary status code.
func status(err error) int32 {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, registry.ErrInvalidHandle):
		return StatusInvalidHandle
	default:
		return StatusInternalError
	}
}
