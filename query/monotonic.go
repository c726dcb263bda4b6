// Package query answers spatial questions about chart series: which
// points fall in the visible window, and which point, candle body, or
// bar segment is under the pointer.
//
// All functions are stateless with respect to the data: they operate on
// the logical series containers, not on the point store. When a series'
// x keys are sorted the queries run in sub-linear time via binary search;
// unsorted or partially non-finite data transparently degrades to a
// linear pass, never to an error.
package query

import (
	"math"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/internal/cache"
)

// monotonicCacheSize bounds the sortedness verdict cache. Verdicts are
// one bool each; the limit only matters for hosts that churn through
// thousands of short-lived containers.
const monotonicCacheSize = 1024

// monotonicCache memoizes sortedness verdicts keyed by container
// generation. Generations are never reused, so entries for replaced
// containers are simply never hit again and age out of the soft limit.
var monotonicCache = cache.New[uint64, bool](monotonicCacheSize)

// MonotonicX reports whether every x key of d is finite and
// non-decreasing versus its predecessor, the precondition for binary
// search over the series.
//
// The verdict is memoized by the container's identity (its generation
// token), not by content: repeated queries against the same unchanged
// container are O(1), while a structurally new container — even one with
// identical values — recomputes. Callers that mutate a container in
// place must call its Invalidate method.
func MonotonicX(d chart.XSeries) bool {
	return monotonicCache.GetOrCreate(d.Generation(), func() bool {
		return scanMonotonic(d)
	})
}

// scanMonotonic performs the single verification pass.
func scanMonotonic(d chart.XSeries) bool {
	n := d.Len()
	prev := math.Inf(-1)
	for i := 0; i < n; i++ {
		x := d.XAt(i)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
		if x < prev {
			return false
		}
		prev = x
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
