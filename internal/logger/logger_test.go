// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	log := NewLogger("test-role")

	require.NotNil(t, log)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()

	require.NotNil(t, log)
	// Must not panic and must not write anywhere.
	log.Info().Str("key", "value").Msg("discarded")
	log.Error().Msg("also discarded")
}

func TestGetChildLogger(t *testing.T) {
	parent := Nop()

	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}
