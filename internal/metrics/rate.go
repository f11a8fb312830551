// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import "github.com/MKhiriev/go-client-bridge/internal/timetick"

// Rate counts events between updates and converts them into an
// events-per-second figure once enough time has elapsed.
type Rate struct {
	countedAt   timetick.Millis
	minInterval timetick.Millis
	count       uint32
	rate        float32
}

// NewRate returns a rate counter anchored at now with a 100 ms minimum
// measurement window.
func NewRate(now timetick.Millis) Rate {
	return NewRateWithInterval(now, 100)
}

// NewRateWithInterval returns a rate counter with an explicit minimum window
// in milliseconds.
func NewRateWithInterval(now, minInterval timetick.Millis) Rate {
	if minInterval == 0 {
		minInterval = 1
	}

	return Rate{countedAt: now, minInterval: minInterval}
}

// Add records n events.
func (r *Rate) Add(n uint32) {
	r.count += n
}

// Update recomputes the rate if at least the minimum window has elapsed since
// the previous computation. Shorter spans keep accumulating.
func (r *Rate) Update(now timetick.Millis) {
	if now < r.countedAt {
		return
	}

	elapsed := now - r.countedAt
	if elapsed < r.minInterval {
		return
	}

	r.rate = float32(r.count) * 1000 / float32(elapsed)
	r.count = 0
	r.countedAt = now
}

// Value returns the most recently computed events-per-second rate.
func (r *Rate) Value() float32 {
	return r.rate
}
