// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package datagram

import "fmt"

// acceptableDiff is how far ahead of the expected sequence number a datagram
// may arrive and still be accepted. Sized for roughly one thousand datagrams
// per second at one second of latency.
const acceptableDiff = 1000

// SequenceID is a wrapping 16-bit datagram sequence number.
type SequenceID uint16

// Next returns the successor sequence number.
func (s SequenceID) Next() SequenceID {
	return s + 1
}

// distanceTo returns how many increments lie between s and other, wrapping.
func (s SequenceID) distanceTo(other SequenceID) uint16 {
	return uint16(other - s)
}

// WrongOrderError reports a duplicate or reordered datagram.
type WrongOrderError struct {
	Expected SequenceID
	Received SequenceID
}

func (e *WrongOrderError) Error() string {
	return fmt.Sprintf("wrong datagram order: expected %#04x, received %#04x", uint16(e.Expected), uint16(e.Received))
}

// OrderedOut stamps outgoing datagrams with consecutive sequence numbers.
type OrderedOut struct {
	next SequenceID
}

// Stamp returns the sequence number for the next outgoing datagram and
// advances the counter.
func (o *OrderedOut) Stamp() SequenceID {
	id := o.next
	o.next = o.next.Next()

	return id
}

// OrderedIn verifies that incoming datagrams arrive in order.
type OrderedIn struct {
	expected SequenceID
}

// Verify accepts id when it is the expected sequence number or a successor
// within the acceptable window (skips are fine, the transport is lossy).
// Duplicates and reordered datagrams yield a *WrongOrderError and leave the
// expected number unchanged.
func (o *OrderedIn) Verify(id SequenceID) error {
	if o.expected.distanceTo(id) > acceptableDiff {
		return &WrongOrderError{Expected: o.expected, Received: id}
	}
	o.expected = id.Next()

	return nil
}
