// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import "fmt"

// MinMaxAvg aggregates sampled values (e.g. round-trip latencies in
// milliseconds) into minimum, maximum, and mean.
type MinMaxAvg struct {
	count uint64
	sum   uint64
	min   uint32
	max   uint32
}

// Add records one sample.
func (m *MinMaxAvg) Add(v uint32) {
	if m.count == 0 || v < m.min {
		m.min = v
	}
	if v > m.max {
		m.max = v
	}
	m.sum += uint64(v)
	m.count++
}

// Min returns the smallest recorded sample, or zero when empty.
func (m *MinMaxAvg) Min() uint32 { return m.min }

// Max returns the largest recorded sample, or zero when empty.
func (m *MinMaxAvg) Max() uint32 { return m.max }

// Avg returns the mean of all recorded samples, or zero when empty.
func (m *MinMaxAvg) Avg() float32 {
	if m.count == 0 {
		return 0
	}

	return float32(m.sum) / float32(m.count)
}

// Count returns how many samples have been recorded.
func (m *MinMaxAvg) Count() uint64 { return m.count }

func (m *MinMaxAvg) String() string {
	return fmt.Sprintf("min:%d avg:%.1f max:%d", m.min, m.Avg(), m.max)
}
