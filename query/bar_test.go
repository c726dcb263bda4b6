package query

import (
	"math"
	"testing"

	"github.com/gogpu/chart"
)

func barSeries(stack string, xs, ys []float64) BarSeries {
	return BarSeries{Data: chart.NewParallel(xs, ys), Stack: stack}
}

func TestClusterSlots(t *testing.T) {
	tests := []struct {
		name      string
		stacks    []string
		wantSlots []int
		wantCount int
	}{
		{"all unstacked", []string{"", "", ""}, []int{0, 1, 2}, 3},
		{"one stack", []string{"a", "a", "a"}, []int{0, 0, 0}, 1},
		{"mixed", []string{"a", "", "a", "b"}, []int{0, 1, 0, 2}, 3},
		{"empty", nil, []int{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := make([]BarSeries, len(tt.stacks))
			for i, s := range tt.stacks {
				series[i] = barSeries(s, nil, nil)
			}
			slots, count := clusterSlots(series)
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
			for i := range tt.wantSlots {
				if slots[i] != tt.wantSlots[i] {
					t.Errorf("slot[%d] = %d, want %d", i, slots[i], tt.wantSlots[i])
				}
			}
		})
	}
}

func TestHitTestBarSingleSeries(t *testing.T) {
	series := []BarSeries{barSeries("", []float64{10, 20}, []float64{5, 8})}
	layout := BarLayout{BarWidth: 4}

	hit, ok := HitTestBar(series, 10, 3, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.DataIndex != 0 {
		t.Errorf("DataIndex = %d, want 0", hit.DataIndex)
	}
	if hit.Left != 8 || hit.Right != 12 {
		t.Errorf("horizontal extent [%v, %v], want [8, 12]", hit.Left, hit.Right)
	}
	if hit.Top != 0 || hit.Bottom != 5 {
		t.Errorf("vertical extent [%v, %v], want [0, 5]", hit.Top, hit.Bottom)
	}

	// Outside the bar horizontally.
	if _, ok := HitTestBar(series, 13, 3, identity, identity, layout); ok {
		t.Error("hit outside the bar's horizontal extent")
	}
	// Above the bar's value.
	if _, ok := HitTestBar(series, 10, 6, identity, identity, layout); ok {
		t.Error("hit above the bar's extent")
	}
}

func TestHitTestBarEdgesInclusive(t *testing.T) {
	series := []BarSeries{barSeries("", []float64{10}, []float64{5})}
	layout := BarLayout{BarWidth: 4}

	corners := []struct{ px, py float64 }{
		{8, 0}, {12, 0}, {8, 5}, {12, 5},
	}
	for _, c := range corners {
		if _, ok := HitTestBar(series, c.px, c.py, identity, identity, layout); !ok {
			t.Errorf("corner (%v, %v) should hit (bounds inclusive)", c.px, c.py)
		}
	}
}

func TestHitTestBarNegativeValue(t *testing.T) {
	series := []BarSeries{barSeries("", []float64{10}, []float64{-5})}
	layout := BarLayout{BarWidth: 4}

	hit, ok := HitTestBar(series, 10, -3, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit below the baseline")
	}
	if hit.Top != -5 || hit.Bottom != 0 {
		t.Errorf("vertical extent [%v, %v], want [-5, 0]", hit.Top, hit.Bottom)
	}
}

func TestHitTestBarClusterLayout(t *testing.T) {
	series := []BarSeries{
		barSeries("", []float64{10}, []float64{5}),
		barSeries("", []float64{10}, []float64{5}),
	}
	layout := BarLayout{BarWidth: 4, BarGap: 2}
	// Cluster width 10 centered on x=10: slot 0 spans [5, 9], slot 1
	// spans [11, 15].

	hit, ok := HitTestBar(series, 6, 3, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit in slot 0")
	}
	if hit.SeriesIndex != 0 {
		t.Errorf("SeriesIndex = %d, want 0", hit.SeriesIndex)
	}

	hit, ok = HitTestBar(series, 12, 3, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit in slot 1")
	}
	if hit.SeriesIndex != 1 {
		t.Errorf("SeriesIndex = %d, want 1", hit.SeriesIndex)
	}

	// The gap between slots is dead space.
	if _, ok := HitTestBar(series, 10, 3, identity, identity, layout); ok {
		t.Error("hit inside the inter-bar gap")
	}
}

func TestHitTestBarStackedSegments(t *testing.T) {
	series := []BarSeries{
		barSeries("a", []float64{10}, []float64{5}),
		barSeries("a", []float64{10}, []float64{3}),
	}
	layout := BarLayout{BarWidth: 4}

	// Segment 0 spans [0, 5], segment 1 sits on it spanning [5, 8].
	hit, ok := HitTestBar(series, 10, 2, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit in the base segment")
	}
	if hit.SeriesIndex != 0 {
		t.Errorf("SeriesIndex = %d, want 0", hit.SeriesIndex)
	}
	if hit.Top != 0 || hit.Bottom != 5 {
		t.Errorf("base segment extent [%v, %v], want [0, 5]", hit.Top, hit.Bottom)
	}

	hit, ok = HitTestBar(series, 10, 7, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit in the upper segment")
	}
	if hit.SeriesIndex != 1 {
		t.Errorf("SeriesIndex = %d, want 1", hit.SeriesIndex)
	}
	if hit.Top != 5 || hit.Bottom != 8 {
		t.Errorf("upper segment extent [%v, %v], want [5, 8]", hit.Top, hit.Bottom)
	}
}

func TestHitTestBarSharedEdgeTopmostWins(t *testing.T) {
	series := []BarSeries{
		barSeries("a", []float64{10}, []float64{5}),
		barSeries("a", []float64{10}, []float64{3}),
	}
	layout := BarLayout{BarWidth: 4}

	// y=5 lies on the shared edge of both segments. The segment whose
	// top is visually higher (smaller top coordinate) wins.
	hit, ok := HitTestBar(series, 10, 5, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit on the shared edge")
	}
	if hit.SeriesIndex != 0 {
		t.Errorf("SeriesIndex = %d, want 0 (topmost segment)", hit.SeriesIndex)
	}
}

func TestHitTestBarExactTieHigherSeriesWins(t *testing.T) {
	// Two zero-height segments in one stack collapse to the same edge.
	series := []BarSeries{
		barSeries("a", []float64{10}, []float64{0}),
		barSeries("a", []float64{10}, []float64{0}),
	}
	layout := BarLayout{BarWidth: 4}

	hit, ok := HitTestBar(series, 10, 0, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit on the collapsed segments")
	}
	if hit.SeriesIndex != 1 {
		t.Errorf("SeriesIndex = %d, want 1 (higher series wins an exact tie)", hit.SeriesIndex)
	}
}

func TestHitTestBarStackedNegative(t *testing.T) {
	series := []BarSeries{
		barSeries("a", []float64{10}, []float64{-5}),
		barSeries("a", []float64{10}, []float64{-3}),
	}
	layout := BarLayout{BarWidth: 4}

	// Negative segments stack downward: [0, -5] then [-5, -8].
	hit, ok := HitTestBar(series, 10, -7, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit in the lower negative segment")
	}
	if hit.SeriesIndex != 1 {
		t.Errorf("SeriesIndex = %d, want 1", hit.SeriesIndex)
	}
	if hit.Top != -8 || hit.Bottom != -5 {
		t.Errorf("segment extent [%v, %v], want [-8, -5]", hit.Top, hit.Bottom)
	}
}

func TestHitTestBarStackSumsAdvanceWithoutHits(t *testing.T) {
	// The pointer misses series 0's segment entirely, but series 1's
	// segment must still sit on top of series 0's running sum.
	series := []BarSeries{
		barSeries("a", []float64{10, 20}, []float64{5, 5}),
		barSeries("a", []float64{10, 20}, []float64{3, 3}),
	}
	layout := BarLayout{BarWidth: 4}

	hit, ok := HitTestBar(series, 20, 6, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit at the second category")
	}
	if hit.SeriesIndex != 1 || hit.DataIndex != 1 {
		t.Errorf("hit (series %d, point %d), want (1, 1)", hit.SeriesIndex, hit.DataIndex)
	}
	if hit.Top != 5 || hit.Bottom != 8 {
		t.Errorf("segment extent [%v, %v], want [5, 8]", hit.Top, hit.Bottom)
	}
}

func TestHitTestBarSkipsNonFinite(t *testing.T) {
	series := []BarSeries{
		barSeries("", []float64{10, math.NaN()}, []float64{5, 5}),
	}
	layout := BarLayout{BarWidth: 4}

	hit, ok := HitTestBar(series, 10, 3, identity, identity, layout)
	if !ok {
		t.Fatal("expected a hit on the finite point")
	}
	if hit.DataIndex != 0 {
		t.Errorf("DataIndex = %d, want 0", hit.DataIndex)
	}
}

func TestHitTestBarEmpty(t *testing.T) {
	if _, ok := HitTestBar(nil, 0, 0, identity, identity, BarLayout{BarWidth: 4}); ok {
		t.Error("hit with no series")
	}
	series := []BarSeries{{Data: nil}}
	if _, ok := HitTestBar(series, 0, 0, identity, identity, BarLayout{BarWidth: 4}); ok {
		t.Error("hit against nil data")
	}
}
