// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package datagram

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the encoded size of a Header in octets.
const HeaderSize = 4

// ErrTruncated is returned when a datagram is too short to contain a header.
var ErrTruncated = errors.New("datagram shorter than header")

// Header is prepended to every datagram payload.
type Header struct {
	// Sequence is the wrapping per-connection datagram sequence number.
	Sequence SequenceID

	// ClientTime is the low 16 bits of the client clock. The client stamps
	// it on outgoing datagrams; the host echoes the most recent value back,
	// which lets the client estimate round-trip latency without a separate
	// ping exchange.
	ClientTime uint16
}

// Append encodes h in big-endian order onto dst and returns the result.
func (h Header) Append(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, uint16(h.Sequence))
	dst = binary.BigEndian.AppendUint16(dst, h.ClientTime)

	return dst
}

// Parse splits a datagram into its header and remaining payload.
func Parse(dgram []byte) (Header, []byte, error) {
	if len(dgram) < HeaderSize {
		return Header{}, nil, ErrTruncated
	}

	header := Header{
		Sequence:   SequenceID(binary.BigEndian.Uint16(dgram[0:2])),
		ClientTime: binary.BigEndian.Uint16(dgram[2:4]),
	}

	return header, dgram[HeaderSize:], nil
}
