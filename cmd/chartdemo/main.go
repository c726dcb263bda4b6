// Command chartdemo exercises the chart data engine end to end: it
// streams a synthetic price series through the point store, slices the
// visible window, and resolves a pointer position to the nearest point.
//
// The demo runs against an in-memory device adapter so it needs no GPU;
// swap in backend/native.NewHALAdapter to run on a real device.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/gpucore"
	"github.com/gogpu/chart/query"
	"github.com/gogpu/chart/store"
)

func main() {
	var (
		points = flag.Int("points", 1000, "initial point count")
		frames = flag.Int("frames", 60, "streaming frames to simulate")
		batch  = flag.Int("batch", 16, "points appended per frame")
		seed   = flag.Int64("seed", 1, "random seed")
	)
	flag.Parse()

	adapter := newMemoryAdapter()
	ps := store.New(adapter)
	defer ps.Dispose()

	rng := rand.New(rand.NewSource(*seed))

	// Initial series: a noisy sine over a millisecond time axis.
	const t0 = 1.7e12 // epoch ms origin
	xs := make([]float64, *points)
	ys := make([]float64, *points)
	for i := range xs {
		xs[i] = t0 + float64(i)*1000
		ys[i] = 100 + 10*math.Sin(float64(i)/40) + rng.Float64()
	}
	data := chart.NewParallel(xs, ys)
	if err := ps.SetSeries(0, data, store.WithXOffset(t0)); err != nil {
		log.Fatalf("set series: %v", err)
	}

	// Stream appends.
	t := xs[len(xs)-1]
	for f := 0; f < *frames; f++ {
		ax := make([]float64, *batch)
		ay := make([]float64, *batch)
		for i := range ax {
			t += 1000
			ax[i] = t
			ay[i] = 100 + 10*math.Sin(t/40000) + rng.Float64()
		}
		if err := ps.AppendSeries(0, chart.NewParallel(ax, ay)); err != nil {
			log.Fatalf("append frame %d: %v", f, err)
		}
	}

	n, _ := ps.SeriesPointCount(0)
	hash, _ := ps.SeriesContentHash(0)
	log.Printf("store: %d points, content hash %08x, %d device writes (%d bytes)",
		n, hash, adapter.writes, adapter.bytesWritten)

	// Zoom to the last quarter of the initial domain and hit-test the
	// middle of the viewport.
	logical := chart.NewParallel(xs, ys)
	xMin := xs[len(xs)*3/4]
	xMax := xs[len(xs)-1]
	visible := query.SliceRange(logical, xMin, xMax)
	log.Printf("query: visible window holds %d of %d points", visible.Len(), logical.Len())

	xScale := chart.NewLinear(xMin, xMax, 0, 800)
	yScale := chart.NewLinear(80, 130, 600, 0)
	if m, ok := query.NearestPoint(
		[]query.PointSeries{{Data: logical, Kind: chart.KindLine}},
		400, 300, xScale, yScale, 50,
	); ok {
		log.Printf("query: pointer resolves to point %d at (%.0f, %.2f)", m.DataIndex, m.X, m.Y)
	} else {
		log.Printf("query: no point within range")
	}
}

// memoryAdapter is an in-memory gpucore.DeviceAdapter for GPU-less runs.
type memoryAdapter struct {
	buffers      map[gpucore.BufferID][]byte
	next         gpucore.BufferID
	writes       int
	bytesWritten int
}

func newMemoryAdapter() *memoryAdapter {
	return &memoryAdapter{
		buffers: make(map[gpucore.BufferID][]byte),
		next:    1,
	}
}

func (m *memoryAdapter) MaxBufferSize() uint64 { return 256 << 20 }

func (m *memoryAdapter) CreateBuffer(size int, _ gpucore.BufferUsage) (gpucore.BufferID, error) {
	id := m.next
	m.next++
	m.buffers[id] = make([]byte, size)
	return id, nil
}

func (m *memoryAdapter) DestroyBuffer(id gpucore.BufferID) {
	delete(m.buffers, id)
}

func (m *memoryAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	if buf, ok := m.buffers[id]; ok {
		copy(buf[offset:], data)
		m.writes++
		m.bytesWritten += len(data)
	}
}
