// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package timetick

// Millis is an absolute timestamp or a duration expressed in milliseconds.
// It mirrors the fixed-width integer representation used across the embedding
// boundary.
type Millis uint64

// TimeTick tracks how much absolute time has been consumed by performed ticks
// and converts newly elapsed time into a tick count.
type TimeTick struct {
	tickDuration      Millis
	consumed          Millis
	maxTicksPerUpdate uint16
}

// New returns a TimeTick anchored at now. tickDuration is the length of one
// tick in milliseconds; maxTicksPerUpdate caps how many ticks a single update
// may report, so a long stall never produces an unbounded burst.
func New(now, tickDuration Millis, maxTicksPerUpdate uint16) TimeTick {
	return TimeTick{
		tickDuration:      tickDuration,
		consumed:          now,
		maxTicksPerUpdate: maxTicksPerUpdate,
	}
}

// SetTickDuration changes the tick duration for subsequent calculations.
func (t *TimeTick) SetTickDuration(d Millis) {
	if d == 0 {
		d = 1
	}
	t.tickDuration = d
}

// Reset moves the consumed-time anchor to now, discarding any accumulated
// time debt.
func (t *TimeTick) Reset(now Millis) {
	t.consumed = now
}

// Ticks returns how many whole ticks fit into the time elapsed since the
// consumed anchor, clamped to maxTicksPerUpdate. Timestamps earlier than the
// anchor yield zero.
func (t *TimeTick) Ticks(now Millis) uint16 {
	if now < t.consumed {
		return 0
	}

	count := (now - t.consumed) / t.tickDuration
	if count >= Millis(t.maxTicksPerUpdate) {
		return t.maxTicksPerUpdate
	}

	return uint16(count)
}

// Performed consumes n ticks worth of absolute time.
func (t *TimeTick) Performed(n uint16) {
	t.consumed += Millis(n) * t.tickDuration
}
