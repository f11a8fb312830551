// Package simhost provides a scripted in-process host for exercising the
// session client without real network I/O.
//
// The host answers every client command the way a cooperative host would:
// it accepts connects, serves the configured authoritative state in chunks,
// and confirms uploaded predicted steps verbatim as authoritative. Tests and
// the simulator pump datagrams between the two sides by hand.
package simhost
