// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Config is the top-level configuration container for the simulator binary.
// It is populated by merging values from environment variables, command-line
// flags, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Sim holds the simulated session loop settings.
	Sim Sim `envPrefix:"SIM_"`

	// Host holds the scripted host settings.
	Host Host `envPrefix:"HOST_"`
}

// Sim controls the simulated client session.
type Sim struct {
	// TickDuration is the simulation tick length (e.g. "16ms").
	// Env: SIM_TICK_DURATION
	TickDuration time.Duration `env:"TICK_DURATION"`

	// RunFor is the total simulated time span to drive the session
	// through (e.g. "2s"). The simulator advances a synthetic clock; it
	// does not sleep.
	// Env: SIM_RUN_FOR
	RunFor time.Duration `env:"RUN_FOR"`
}

// Host controls the scripted in-process host the simulator runs against.
type Host struct {
	// StateSize is the size in octets of the synthetic authoritative
	// state served to the client.
	// Env: HOST_STATE_SIZE
	StateSize int `env:"STATE_SIZE"`

	// ChunkSize is the state transfer chunk size in octets.
	// Env: HOST_CHUNK_SIZE
	ChunkSize int `env:"CHUNK_SIZE"`
}

// defaults returns the built-in configuration layer merged in last.
func defaults() *Config {
	return &Config{
		Sim: Sim{
			TickDuration: 16 * time.Millisecond,
			RunFor:       2 * time.Second,
		},
		Host: Host{
			StateSize: 1024,
			ChunkSize: 256,
		},
	}
}

// GetConfig assembles the simulator configuration from environment
// variables, command-line flags, and defaults.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withDefaults().
		build()
}
