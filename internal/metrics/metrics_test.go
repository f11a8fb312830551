// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"testing"

	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestRate_ComputesPerSecond(t *testing.T) {
	r := NewRate(0)

	r.Add(10)
	r.Update(1000)

	assert.InDelta(t, 10.0, float64(r.Value()), 0.001)
}

func TestRate_AccumulatesBelowMinimumWindow(t *testing.T) {
	r := NewRate(0)

	r.Add(5)
	r.Update(50) // below the 100 ms window, nothing computed yet
	assert.Zero(t, r.Value())

	r.Add(5)
	r.Update(100)
	assert.InDelta(t, 100.0, float64(r.Value()), 0.001)
}

func TestRate_ResetsCountAfterWindow(t *testing.T) {
	r := NewRate(0)

	r.Add(100)
	r.Update(1000)
	r.Update(2000)

	assert.Zero(t, r.Value(), "no events in the second window")
}

func TestMinMaxAvg(t *testing.T) {
	var m MinMaxAvg

	assert.Zero(t, m.Avg())

	m.Add(10)
	m.Add(30)
	m.Add(20)

	assert.Equal(t, uint32(10), m.Min())
	assert.Equal(t, uint32(30), m.Max())
	assert.InDelta(t, 20.0, float64(m.Avg()), 0.001)
	assert.Equal(t, uint64(3), m.Count())
}

func TestNetwork_Snapshot(t *testing.T) {
	n := NewNetwork(0, logger.Nop())

	n.Sent([][]byte{make([]byte, 96), make([]byte, 196)})
	n.Received(make([]byte, 500))
	n.AddLatency(32)
	n.Update(1000)

	snapshot := n.Snapshot()
	assert.InDelta(t, 2.0, float64(snapshot.Outgoing.DatagramsPerSecond), 0.001)
	assert.InDelta(t, 300.0, float64(snapshot.Outgoing.OctetsPerSecond), 0.001)
	assert.InDelta(t, 1.0, float64(snapshot.Incoming.DatagramsPerSecond), 0.001)
	assert.InDelta(t, 500.0, float64(snapshot.Incoming.OctetsPerSecond), 0.001)
	assert.Equal(t, uint32(32), snapshot.Latency.Max())
}
