package query

import (
	"github.com/gogpu/chart"
)

// BarSeries is one series participating in a bar hit test.
type BarSeries struct {
	// Data holds the series' points: x is the category position, y the
	// bar (or stack segment) extent, negative values growing downward.
	Data chart.SeriesData

	// Stack is the stack identifier. Series sharing a non-empty Stack
	// occupy one cluster slot and stack their segments; series with an
	// empty Stack each get their own slot.
	Stack string
}

// BarLayout describes the cluster geometry in range units.
type BarLayout struct {
	// BarWidth is the width of one bar.
	BarWidth float64

	// BarGap is the gap between adjacent bars within a cluster.
	BarGap float64
}

// BarHit identifies the bar segment under the pointer, with the
// segment's axis-aligned rectangle in range coordinates.
type BarHit struct {
	// SeriesIndex is the position in the queried series slice.
	SeriesIndex int

	// DataIndex is the point's index within its series.
	DataIndex int

	// Left, Top, Right, Bottom are the segment's rectangle.
	Left, Top, Right, Bottom float64
}

// clusterSlots assigns each series its lane within a category cluster:
// series sharing a non-empty stack identifier share one slot, unstacked
// series each get their own. Returns the per-series slot and the total
// slot count.
func clusterSlots(series []BarSeries) (slots []int, count int) {
	slots = make([]int, len(series))
	stackSlot := make(map[string]int)
	for i, s := range series {
		if s.Stack != "" {
			slot, ok := stackSlot[s.Stack]
			if !ok {
				slot = count
				stackSlot[s.Stack] = slot
				count++
			}
			slots[i] = slot
			continue
		}
		slots[i] = count
		count++
	}
	return slots, count
}

// stackKey buckets running stack sums by stack identifier and category.
type stackKey struct {
	stack string
	x     float64
}

// HitTestBar resolves a pointer position to the bar segment under it.
//
// px, py are range-space coordinates. Each candidate point's rectangle
// is computed from the cluster layout: the cluster is centered on the
// scaled category x, slots are laid out left to right in slot order, and
// stacked series place each segment's vertical extent by accumulating
// running positive and negative sums per category bucket in series
// order. A hit requires axis-aligned rectangle containment, bounds
// inclusive.
//
// When multiple segments qualify (segments share edges), the visually
// topmost one — smallest top coordinate — wins; remaining ties favor the
// higher series index. Returns false when no segment contains the
// pointer.
func HitTestBar(series []BarSeries, px, py float64, xs, ys chart.Scale, layout BarLayout) (BarHit, bool) {
	slots, slotCount := clusterSlots(series)
	if slotCount == 0 {
		return BarHit{}, false
	}

	clusterWidth := float64(slotCount)*layout.BarWidth + float64(slotCount-1)*layout.BarGap
	baseline := ys.Scale(0)

	posSums := make(map[stackKey]float64)
	negSums := make(map[stackKey]float64)

	best := BarHit{SeriesIndex: -1}
	found := false

	for si, s := range series {
		d := s.Data
		if d == nil {
			continue
		}
		slotOffset := float64(slots[si]) * (layout.BarWidth + layout.BarGap)

		n := d.Len()
		for i := 0; i < n; i++ {
			x := d.XAt(i)
			y := d.YAt(i)
			if !isFinite(x) || !isFinite(y) {
				continue
			}

			// Vertical extent. Stacked segments sit on the running sum
			// of their bucket; the sums advance for every point, hit or
			// not, because later series depend on them.
			segStart, segEnd := 0.0, y
			if s.Stack != "" {
				key := stackKey{stack: s.Stack, x: x}
				if y >= 0 {
					segStart = posSums[key]
					segEnd = segStart + y
					posSums[key] = segEnd
				} else {
					segStart = negSums[key]
					segEnd = segStart + y
					negSums[key] = segEnd
				}
			}

			left := xs.Scale(x) - clusterWidth/2 + slotOffset
			right := left + layout.BarWidth
			if px < left || px > right {
				continue
			}

			top := ys.Scale(segEnd)
			bottom := baseline
			if s.Stack != "" {
				bottom = ys.Scale(segStart)
			}
			if top > bottom {
				top, bottom = bottom, top
			}
			if py < top || py > bottom {
				continue
			}

			// Topmost segment wins; on an exact tie the later (higher)
			// series index replaces the earlier.
			if !found || top <= best.Top {
				best = BarHit{
					SeriesIndex: si,
					DataIndex:   i,
					Left:        left,
					Top:         top,
					Right:       right,
					Bottom:      bottom,
				}
				found = true
			}
		}
	}

	if !found {
		return BarHit{}, false
	}
	return best, true
}
