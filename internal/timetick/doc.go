// Package timetick provides fixed-duration tick accounting over
// caller-supplied millisecond timestamps.
//
// The client simulation never reads the wall clock; every boundary call
// carries an absolute time in milliseconds and TimeTick converts the elapsed
// span into a bounded number of whole simulation ticks.
package timetick
