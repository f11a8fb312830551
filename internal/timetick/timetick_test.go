// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package timetick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeTick_ElapsedTicks(t *testing.T) {
	now := Millis(0)
	timer := New(now, 10, 100)

	now += 20
	assert.Equal(t, uint16(2), timer.Ticks(now))
	timer.Performed(2)

	now += 9
	assert.Equal(t, uint16(0), timer.Ticks(now))
}

func TestTimeTick_ChangeDuration(t *testing.T) {
	now := Millis(0)
	timer := New(now, 10, 100)

	now += 20
	assert.Equal(t, uint16(2), timer.Ticks(now))
	timer.Performed(2)

	now += 9
	timer.SetTickDuration(9)
	assert.Equal(t, uint16(1), timer.Ticks(now))
	timer.Performed(1)

	now += 8
	assert.Equal(t, uint16(0), timer.Ticks(now))
}

func TestTimeTick_ClampedToMaxPerUpdate(t *testing.T) {
	timer := New(0, 10, 4)

	assert.Equal(t, uint16(4), timer.Ticks(1000))
}

func TestTimeTick_TimeBeforeAnchor(t *testing.T) {
	timer := New(500, 10, 4)

	assert.Equal(t, uint16(0), timer.Ticks(100))
}

func TestTimeTick_ResetDiscardsDebt(t *testing.T) {
	timer := New(0, 10, 100)

	assert.Equal(t, uint16(10), timer.Ticks(100))
	timer.Reset(100)
	assert.Equal(t, uint16(0), timer.Ticks(100))
}

func TestRangeToFactor(t *testing.T) {
	r := NewRangeToFactor(-5, 1, "low", "mid", "high")

	assert.Equal(t, "low", r.Factor(-20))
	assert.Equal(t, "mid", r.Factor(-2))
	assert.Equal(t, "high", r.Factor(2))
}

func TestRangeToFactor_Boundaries(t *testing.T) {
	r := NewRangeToFactor(2, 5, 0.9, 1.0, 2.0)

	assert.Equal(t, 0.9, r.Factor(1))
	assert.Equal(t, 1.0, r.Factor(2))
	assert.Equal(t, 1.0, r.Factor(5))
	assert.Equal(t, 2.0, r.Factor(6))
}
