// Package registry implements a generation-checked slot store that owns
// opaque values behind integer handles.
//
// A handle packs a slot index and a generation counter into a single uint64.
// Every time a slot is vacated its generation is bumped, so a handle issued
// for a previous occupant of the same slot can never resolve again. Handle 0
// is reserved as the invalid sentinel and is never issued.
package registry
