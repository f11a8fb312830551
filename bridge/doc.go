// Package bridge exposes the session client to foreign embedders through
// opaque integer handles.
//
// A caller on the other side of the boundary has no Go object model: it holds
// a uint64 handle, passes fixed-width integers in, and receives integer
// status codes out. The package owns every client instance for the span
// between ClientNew and ClientFree; a stale, foreign, or never-issued handle
// always yields StatusInvalidHandle and can never corrupt memory, no matter
// how often it is retried.
package bridge
