// Package protocol defines the command set exchanged between a session
// client and its host, and the codec that maps commands onto datagram
// payloads.
//
// Each payload carries exactly one command: a single type octet followed by
// the CBOR encoding of the command struct. The datagram header handled by the
// datagram package is not part of this package.
package protocol
