package query

import (
	"math"
	"testing"

	"github.com/gogpu/chart"
)

func parallel(xs, ys []float64) *chart.Parallel {
	return chart.NewParallel(xs, ys)
}

func TestRangeIndices(t *testing.T) {
	sorted := parallel(
		[]float64{1, 2, 3, 4, 5},
		[]float64{10, 20, 30, 40, 50},
	)

	tests := []struct {
		name       string
		xMin, xMax float64
		start, end int
	}{
		{"interior inclusive", 2, 4, 1, 4},
		{"full window", 1, 5, 0, 5},
		{"beyond both ends", 0, 10, 0, 5},
		{"left half", 1, 2.5, 0, 2},
		{"empty right", 6, 10, 5, 5},
		{"empty left", -5, 0, 0, 0},
		{"inverted window", 4, 2, 1, 1},
		{"single point", 3, 3, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := RangeIndices(sorted, tt.xMin, tt.xMax)
			if start != tt.start || end != tt.end {
				t.Errorf("RangeIndices(%v, %v) = (%d, %d), want (%d, %d)",
					tt.xMin, tt.xMax, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestRangeIndicesNonFiniteBound(t *testing.T) {
	d := parallel([]float64{1, 2, 3}, []float64{1, 2, 3})

	for _, bound := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		start, end := RangeIndices(d, bound, 2)
		if start != 0 || end != 3 {
			t.Errorf("non-finite xMin %v: got (%d, %d), want full range", bound, start, end)
		}
		start, end = RangeIndices(d, 1, bound)
		if start != 0 || end != 3 {
			t.Errorf("non-finite xMax %v: got (%d, %d), want full range", bound, start, end)
		}
	}
}

func TestRangeIndicesUnsorted(t *testing.T) {
	d := parallel([]float64{3, 1, 2}, []float64{0, 0, 0})
	start, end := RangeIndices(d, 1, 2)
	if start != 0 || end != 3 {
		t.Errorf("unsorted data: got (%d, %d), want full range", start, end)
	}
}

func TestSliceRangeSorted(t *testing.T) {
	d := parallel(
		[]float64{1, 2, 3, 4, 5},
		[]float64{10, 20, 30, 40, 50},
	)
	got := SliceRange(d, 2, 4)
	if got.Len() != 3 {
		t.Fatalf("Len = %d, want 3", got.Len())
	}
	wantX := []float64{2, 3, 4}
	wantY := []float64{20, 30, 40}
	for i := range wantX {
		if got.XAt(i) != wantX[i] || got.YAt(i) != wantY[i] {
			t.Errorf("point %d = (%v, %v), want (%v, %v)",
				i, got.XAt(i), got.YAt(i), wantX[i], wantY[i])
		}
	}
}

func TestSliceRangeFullWindowReturnsSameContainer(t *testing.T) {
	d := parallel([]float64{1, 2, 3}, []float64{1, 2, 3})
	if got := SliceRange(d, 0, 10); got != chart.SeriesData(d) {
		t.Error("full window did not return the original container")
	}
}

func TestSliceRangeNonFiniteBoundReturnsInput(t *testing.T) {
	d := parallel([]float64{3, 1, 2}, []float64{0, 0, 0})
	if got := SliceRange(d, math.NaN(), 2); got != chart.SeriesData(d) {
		t.Error("NaN bound did not return the input unchanged")
	}
	if got := SliceRange(d, 0, math.Inf(1)); got != chart.SeriesData(d) {
		t.Error("infinite bound did not return the input unchanged")
	}
}

func TestSliceRangeEmptyWindowPreservesShape(t *testing.T) {
	d := chart.NewInterleaved([]float32{1, 10, 2, 20, 3, 30})
	got := SliceRange(d, 100, 200)
	if got.Len() != 0 {
		t.Fatalf("Len = %d, want 0", got.Len())
	}
	if _, ok := got.(*chart.Interleaved); !ok {
		t.Errorf("empty window changed shape: got %T", got)
	}
}

func TestSliceRangeUnsortedPreservesOrder(t *testing.T) {
	d := parallel([]float64{3, 1, 5, 2, 4}, []float64{30, 10, 50, 20, 40})
	got := SliceRange(d, 2, 4)
	if got.Len() != 3 {
		t.Fatalf("Len = %d, want 3", got.Len())
	}
	wantX := []float64{3, 2, 4}
	for i := range wantX {
		if got.XAt(i) != wantX[i] {
			t.Errorf("point %d x = %v, want %v (original order lost)", i, got.XAt(i), wantX[i])
		}
	}
}

func TestSliceRangeUnsortedSkipsNonFiniteX(t *testing.T) {
	d := parallel([]float64{2, math.NaN(), 3, 1}, []float64{20, 99, 30, 10})
	got := SliceRange(d, 1, 3)
	if got.Len() != 3 {
		t.Fatalf("Len = %d, want 3", got.Len())
	}
	for i := 0; i < got.Len(); i++ {
		if math.IsNaN(got.XAt(i)) {
			t.Errorf("point %d has NaN x", i)
		}
	}
}

func TestSliceRangeUnsortedPreservesShapeAndSizes(t *testing.T) {
	d := chart.NewSizedParallel(
		[]float64{3, 1, 2},
		[]float64{30, 10, 20},
		[]float64{9, 7, 8},
	)
	got := SliceRange(d, 1, 2)
	p, ok := got.(*chart.Parallel)
	if !ok {
		t.Fatalf("shape changed: got %T", got)
	}
	if !p.HasSize() {
		t.Fatal("sizes dropped by linear fallback")
	}
	if p.Len() != 2 || p.SizeAt(0) != 7 || p.SizeAt(1) != 8 {
		t.Errorf("sizes not carried through: len=%d sizes=(%v, %v)",
			p.Len(), p.SizeAt(0), p.SizeAt(1))
	}
}

func TestSliceRangeAgreesWithLinearScan(t *testing.T) {
	xs := make([]float64, 100)
	ys := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i) * 0.5
		ys[i] = float64(i)
	}
	sorted := parallel(xs, ys)

	got := SliceRange(sorted, 10, 30)
	want := filterRange(sorted, 10, 30)
	if got.Len() != want.Len() {
		t.Fatalf("binary search found %d points, linear scan %d", got.Len(), want.Len())
	}
	for i := 0; i < got.Len(); i++ {
		if got.XAt(i) != want.XAt(i) || got.YAt(i) != want.YAt(i) {
			t.Errorf("point %d: binary (%v, %v) vs linear (%v, %v)",
				i, got.XAt(i), got.YAt(i), want.XAt(i), want.YAt(i))
		}
	}
}

func TestSliceCandles(t *testing.T) {
	c := chart.NewCandles([]chart.Candle{
		{T: 1, Open: 1, High: 2, Low: 0, Close: 1},
		{T: 2, Open: 2, High: 3, Low: 1, Close: 2},
		{T: 3, Open: 3, High: 4, Low: 2, Close: 3},
	})

	got := SliceCandles(c, 2, 3)
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	if got.At(0).T != 2 || got.At(1).T != 3 {
		t.Errorf("window = [%v, %v], want [2, 3]", got.At(0).T, got.At(1).T)
	}

	if SliceCandles(c, 0, 10) != c {
		t.Error("full window did not return the original container")
	}
	if SliceCandles(c, math.NaN(), 3) != c {
		t.Error("NaN bound did not return the input unchanged")
	}
}
