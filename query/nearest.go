package query

import (
	"sort"

	"github.com/gogpu/chart"
)

// PointSeries is one series participating in a nearest-point query.
type PointSeries struct {
	// Data holds the series' logical points.
	Data chart.SeriesData

	// Kind selects per-kind acceptance behavior: scatter series widen
	// the acceptance radius by each point's rendered symbol radius.
	Kind chart.SeriesKind
}

// Match identifies the data point nearest to the pointer.
type Match struct {
	// SeriesIndex is the position in the queried series slice.
	SeriesIndex int

	// DataIndex is the point's index within its series.
	DataIndex int

	// X, Y are the matched point's domain coordinates.
	X, Y float64

	// DistanceSquared is the squared range-space (pixel) distance
	// between the pointer and the matched point.
	DistanceSquared float64
}

// NearestPoint resolves a pointer position to the closest data point
// across the given series.
//
// px, py are range-space (pixel) coordinates; xs and ys are the axis
// scales. A point matches when its range-space distance to the pointer
// is at most maxDist — for scatter series, maxDist plus the point's
// rendered symbol radius.
//
// Over a series with monotonic finite x, the search seeds at the
// binary-search position of the pointer's domain x and expands left and
// right simultaneously; a side stops as soon as its x distance alone
// exceeds the current best distance, which is sound only because x is
// sorted. Non-monotonic series fall back to a full scan.
//
// Ties (equal distance) are broken by lower series index, then lower
// data index, so results are deterministic. Returns false when no point
// is within range.
func NearestPoint(series []PointSeries, px, py float64, xs, ys chart.Scale, maxDist float64) (Match, bool) {
	targetX := xs.Invert(px)

	best := Match{SeriesIndex: -1}
	found := false

	better := func(dist2 float64, si, di int) bool {
		if !found {
			return true
		}
		if dist2 != best.DistanceSquared {
			return dist2 < best.DistanceSquared
		}
		if si != best.SeriesIndex {
			return si < best.SeriesIndex
		}
		return di < best.DataIndex
	}

	for si, s := range series {
		d := s.Data
		if d == nil || d.Len() == 0 {
			continue
		}

		consider := func(i int) {
			x := d.XAt(i)
			y := d.YAt(i)
			if !isFinite(x) || !isFinite(y) {
				return
			}
			dx := xs.Scale(x) - px
			dy := ys.Scale(y) - py
			dist2 := dx*dx + dy*dy

			radius := maxDist
			if s.Kind == chart.KindScatter {
				radius += d.SizeAt(i) / 2
			}
			if radius < 0 || dist2 > radius*radius {
				return
			}
			if better(dist2, si, i) {
				best = Match{
					SeriesIndex:     si,
					DataIndex:       i,
					X:               x,
					Y:               y,
					DistanceSquared: dist2,
				}
				found = true
			}
		}

		if !MonotonicX(d) {
			for i := 0; i < d.Len(); i++ {
				consider(i)
			}
			continue
		}

		n := d.Len()
		seed := sort.Search(n, func(i int) bool { return d.XAt(i) >= targetX })

		// xBeyondBest reports whether index i's x distance alone already
		// exceeds the current best, at which point a sorted side can
		// only get worse.
		xBeyondBest := func(i int) bool {
			if !found {
				return false
			}
			dx := xs.Scale(d.XAt(i)) - px
			return dx*dx > best.DistanceSquared
		}

		left, right := seed-1, seed
		leftOpen, rightOpen := left >= 0, right < n
		for leftOpen || rightOpen {
			if leftOpen {
				if xBeyondBest(left) {
					leftOpen = false
				} else {
					consider(left)
					left--
					leftOpen = left >= 0
				}
			}
			if rightOpen {
				if xBeyondBest(right) {
					rightOpen = false
				} else {
					consider(right)
					right++
					rightOpen = right < n
				}
			}
		}
	}

	if !found {
		return Match{}, false
	}
	return best, true
}
