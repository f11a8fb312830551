// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidSimConfigs indicates invalid simulation settings
	// (for example, a non-positive tick duration or time span).
	ErrInvalidSimConfigs = errors.New("invalid sim configuration")
	// ErrInvalidHostConfigs indicates invalid scripted host settings
	// (for example, a negative state size or zero chunk size).
	ErrInvalidHostConfigs = errors.New("invalid host configuration")
)
