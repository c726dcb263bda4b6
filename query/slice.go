package query

import (
	"sort"

	"github.com/gogpu/chart"
)

// RangeIndices returns the index bounds [start, end) of the points whose
// x falls within [xMin, xMax], both bounds inclusive.
//
// A non-finite bound, or data that is not monotonic (where a contiguous
// index range cannot represent the visible subset), conservatively
// returns the full range (0, Len).
func RangeIndices(d chart.XSeries, xMin, xMax float64) (start, end int) {
	n := d.Len()
	if !isFinite(xMin) || !isFinite(xMax) || !MonotonicX(d) {
		return 0, n
	}
	return boundsByX(d, xMin, xMax)
}

// boundsByX computes lower/upper-bound indices over monotonic data:
// start is the first index with x >= xMin, end the first with x > xMax.
func boundsByX(d chart.XSeries, xMin, xMax float64) (start, end int) {
	n := d.Len()
	start = sort.Search(n, func(i int) bool { return d.XAt(i) >= xMin })
	end = sort.Search(n, func(i int) bool { return d.XAt(i) > xMax })
	if end < start {
		// Inverted window (xMax < xMin): empty.
		end = start
	}
	return start, end
}

// SliceRange returns the subset of d whose x falls within [xMin, xMax],
// both bounds inclusive.
//
// If either bound is non-finite the input is returned unchanged. Over
// monotonic data the window is found by binary search; a window spanning
// the whole series returns the original container (no allocation), and
// an empty window returns an empty view of the same shape. Non-monotonic
// data falls back to a single linear pass that preserves the original
// order and skips points with non-finite x.
func SliceRange(d chart.SeriesData, xMin, xMax float64) chart.SeriesData {
	if !isFinite(xMin) || !isFinite(xMax) {
		return d
	}
	if MonotonicX(d) {
		start, end := boundsByX(d, xMin, xMax)
		if start == 0 && end == d.Len() {
			return d
		}
		return d.Slice(start, end)
	}
	return filterRange(d, xMin, xMax)
}

// filterRange is the linear fallback for unsorted data. The result is
// materialized in the same shape as the input so downstream consumers
// see no difference from the binary-search path.
func filterRange(d chart.SeriesData, xMin, xMax float64) chart.SeriesData {
	keep := make([]int, 0, d.Len())
	n := d.Len()
	for i := 0; i < n; i++ {
		x := d.XAt(i)
		if !isFinite(x) {
			continue
		}
		if x >= xMin && x <= xMax {
			keep = append(keep, i)
		}
	}
	if len(keep) == n {
		return d
	}

	switch d.(type) {
	case *chart.Interleaved:
		vals := make([]float32, 0, 2*len(keep))
		for _, i := range keep {
			vals = append(vals, float32(d.XAt(i)), float32(d.YAt(i)))
		}
		return chart.NewInterleaved(vals)
	case *chart.Parallel:
		xs := make([]float64, 0, len(keep))
		ys := make([]float64, 0, len(keep))
		var sizes []float64
		if d.HasSize() {
			sizes = make([]float64, 0, len(keep))
		}
		for _, i := range keep {
			xs = append(xs, d.XAt(i))
			ys = append(ys, d.YAt(i))
			if sizes != nil {
				sizes = append(sizes, d.SizeAt(i))
			}
		}
		return chart.NewSizedParallel(xs, ys, sizes)
	default:
		// Record sequence, and the shape any external container
		// degrades to.
		pts := make([]chart.Point, 0, len(keep))
		var sizes []float64
		if d.HasSize() {
			sizes = make([]float64, 0, len(keep))
		}
		for _, i := range keep {
			pts = append(pts, chart.Pt(d.XAt(i), d.YAt(i)))
			if sizes != nil {
				sizes = append(sizes, d.SizeAt(i))
			}
		}
		if sizes != nil {
			return chart.NewSizedPoints(pts, sizes)
		}
		return chart.NewPoints(pts)
	}
}

// SliceCandles returns the candles whose timestamp falls within
// [tMin, tMax], both bounds inclusive, with the same semantics as
// SliceRange: unchanged input on non-finite bounds, reference identity
// on a full window, binary search when sorted, linear fallback when not.
func SliceCandles(c *chart.Candles, tMin, tMax float64) *chart.Candles {
	if !isFinite(tMin) || !isFinite(tMax) {
		return c
	}
	if MonotonicX(c) {
		start, end := boundsByX(c, tMin, tMax)
		if start == 0 && end == c.Len() {
			return c
		}
		return c.Slice(start, end)
	}

	n := c.Len()
	out := make([]chart.Candle, 0, n)
	for i := 0; i < n; i++ {
		t := c.XAt(i)
		if !isFinite(t) {
			continue
		}
		if t >= tMin && t <= tMax {
			out = append(out, c.At(i))
		}
	}
	if len(out) == n {
		return c
	}
	return chart.NewCandles(out)
}
