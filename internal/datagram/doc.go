// Package datagram implements the fixed header prepended to every datagram
// exchanged between client and host, plus ordered-delivery bookkeeping.
//
// The header carries a wrapping 16-bit sequence number and the low 16 bits of
// the sender's clock. Receivers accept a datagram only when its sequence
// number is equal to or a close successor of the expected one; duplicates and
// reordered datagrams are rejected so the command layer never sees stale
// input.
package datagram
