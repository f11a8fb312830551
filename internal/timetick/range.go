// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package timetick

import "cmp"

// RangeToFactor maps an input value to one of three factors depending on
// whether it falls below, inside, or above a closed range. The client uses it
// to speed up or slow down its tick rate based on queue depths.
type RangeToFactor[V cmp.Ordered, F any] struct {
	rangeMin    V
	rangeMax    V
	belowFactor F
	factor      F
	aboveFactor F
}

// NewRangeToFactor returns a lookup for [rangeMin, rangeMax] with the three
// outcome factors.
func NewRangeToFactor[V cmp.Ordered, F any](rangeMin, rangeMax V, belowFactor, factor, aboveFactor F) RangeToFactor[V, F] {
	return RangeToFactor[V, F]{
		rangeMin:    rangeMin,
		rangeMax:    rangeMax,
		belowFactor: belowFactor,
		factor:      factor,
		aboveFactor: aboveFactor,
	}
}

// Factor returns the factor matching input's position relative to the range.
func (r *RangeToFactor[V, F]) Factor(input V) F {
	if input < r.rangeMin {
		return r.belowFactor
	}
	if input > r.rangeMax {
		return r.aboveFactor
	}

	return r.factor
}
