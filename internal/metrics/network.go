// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"fmt"

	"github.com/MKhiriev/go-client-bridge/internal/logger"
	"github.com/MKhiriev/go-client-bridge/internal/timetick"
)

// datagramHeaderOverhead approximates the per-datagram transport overhead
// added on the wire, counted into octet rates for outgoing traffic.
const datagramHeaderOverhead = 4

// InDirection holds the traffic rates for one direction.
type InDirection struct {
	DatagramsPerSecond float32
	OctetsPerSecond    float32
}

func (d InDirection) String() string {
	return fmt.Sprintf("%.1f datagrams/s %.1f octets/s", d.DatagramsPerSecond, d.OctetsPerSecond)
}

// Combined is a snapshot of both traffic directions plus latency aggregates.
type Combined struct {
	Outgoing InDirection
	Incoming InDirection
	Latency  MinMaxAvg
}

func (c Combined) String() string {
	return fmt.Sprintf("out: %v, in: %v, latency: %v", c.Outgoing, c.Incoming, c.Latency.String())
}

// Network tracks datagram traffic for a single client session and
// periodically reports a debug summary.
type Network struct {
	inDatagrams  Rate
	inOctets     Rate
	outDatagrams Rate
	outOctets    Rate
	latency      MinMaxAvg

	lastReportAt timetick.Millis
	reportEvery  timetick.Millis
	log          *logger.Logger
}

// NewNetwork returns traffic metrics anchored at now.
func NewNetwork(now timetick.Millis, log *logger.Logger) *Network {
	return &Network{
		inDatagrams:  NewRate(now),
		inOctets:     NewRate(now),
		outDatagrams: NewRate(now),
		outOctets:    NewRate(now),
		lastReportAt: now,
		reportEvery:  500,
		log:          log,
	}
}

// Sent records a batch of outgoing datagrams.
func (n *Network) Sent(datagrams [][]byte) {
	for _, datagram := range datagrams {
		n.outOctets.Add(datagramHeaderOverhead + uint32(len(datagram)))
	}
	n.outDatagrams.Add(uint32(len(datagrams)))
}

// Received records one incoming datagram.
func (n *Network) Received(datagram []byte) {
	n.inOctets.Add(uint32(len(datagram)))
	n.inDatagrams.Add(1)
}

// AddLatency records one round-trip latency sample in milliseconds.
func (n *Network) AddLatency(ms uint32) {
	n.latency.Add(ms)
}

// Update recomputes all rates and emits a debug summary at most twice a
// second.
func (n *Network) Update(now timetick.Millis) {
	n.inDatagrams.Update(now)
	n.inOctets.Update(now)
	n.outDatagrams.Update(now)
	n.outOctets.Update(now)

	if now >= n.lastReportAt && now-n.lastReportAt > n.reportEvery {
		n.lastReportAt = now
		n.log.Debug().Stringer("metrics", n.Snapshot()).Msg("network metrics")
	}
}

// Snapshot returns the current rates and latency aggregates.
func (n *Network) Snapshot() Combined {
	return Combined{
		Outgoing: InDirection{
			DatagramsPerSecond: n.outDatagrams.Value(),
			OctetsPerSecond:    n.outOctets.Value(),
		},
		Incoming: InDirection{
			DatagramsPerSecond: n.inDatagrams.Value(),
			OctetsPerSecond:    n.inOctets.Value(),
		},
		Latency: n.latency,
	}
}
