// Package metrics tracks datagram traffic rates and latency aggregates for a
// client session.
//
// All measurements are driven by the caller-supplied millisecond timestamps
// that flow through the boundary; the package never reads the wall clock.
package metrics
