// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [Config] satisfies all invariants
// before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Config) validate() error {
	if cfg.Sim.TickDuration <= 0 || cfg.Sim.RunFor <= 0 {
		return ErrInvalidSimConfigs
	}

	if cfg.Host.StateSize < 0 || cfg.Host.ChunkSize <= 0 {
		return ErrInvalidHostConfigs
	}

	return nil
}
