// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-tick-duration simulation tick length (e.g., "16ms")
//	-run-for total simulated time span (e.g., "2s")
//	-state-size synthetic authoritative state size in octets
//	-chunk-size state transfer chunk size in octets
func ParseFlags() *Config {
	var tickDuration time.Duration
	var runFor time.Duration
	var stateSize int
	var chunkSize int

	flag.DurationVar(&tickDuration, "tick-duration", 0, "Simulation tick length (e.g., 16ms)")
	flag.DurationVar(&runFor, "run-for", 0, "Total simulated time span (e.g., 2s)")
	flag.IntVar(&stateSize, "state-size", 0, "Synthetic state size in octets")
	flag.IntVar(&chunkSize, "chunk-size", 0, "State transfer chunk size in octets")

	flag.Parse()

	return &Config{
		Sim: Sim{
			TickDuration: tickDuration,
			RunFor:       runFor,
		},
		Host: Host{
			StateSize: stateSize,
			ChunkSize: chunkSize,
		},
	}
}
