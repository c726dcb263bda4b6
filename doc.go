// Package chart provides the streaming data engine behind GPU-rendered
// 2D charts.
//
// # Overview
//
// chart manages large, frequently-updated point series for charting
// surfaces built on the GoGPU ecosystem. It owns the device-resident
// vertex data (store.PointStore), answers visible-window queries against
// logical series data (query.SliceRange and friends), and resolves
// pointer positions to the nearest point, candlestick body, or bar
// segment (query.NearestPoint, query.NearestCandle, query.HitTestBar).
//
// Drawing is deliberately not part of this module: the render coordinator
// asks the store for a buffer handle and a point count each frame and
// issues its own draw calls. Axis, grid, tooltip, and theme handling live
// with the host application.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/chart"
//	    "github.com/gogpu/chart/store"
//	)
//
//	ps := store.New(adapter) // adapter: gpucore.DeviceAdapter
//	defer ps.Dispose()
//
//	data := chart.NewInterleaved([]float32{0, 10, 1, 11, 2, 12})
//	if err := ps.SetSeries(0, data); err != nil {
//	    // ...
//	}
//	buf, _ := ps.SeriesBuffer(0)
//	n, _ := ps.SeriesPointCount(0)
//	// hand buf and n to the render pass
//
// # Architecture
//
// The module is organized into:
//   - Public API: series data containers, scales, Point, SeriesKind
//   - store: per-series device buffer with CPU mirror and delta uploads
//   - query: sortedness detection, range slicing, nearest-match queries
//   - gpucore: opaque resource IDs and the DeviceAdapter abstraction
//   - backend/native: DeviceAdapter over gogpu/wgpu HAL
//   - render: host-integration device handle (gpucontext)
//
// # Input Shapes
//
// Three container shapes are accepted and normalized internally:
// record sequences (Points), parallel arrays (Parallel), and flat
// interleaved buffers (Interleaved), including sub-views into larger
// buffers. All downstream code sees only the SeriesData interface.
//
// # Data Quality
//
// Malformed-but-structurally-valid input never fails: mismatched
// parallel-array lengths clamp to the shorter length, non-finite
// coordinates are skipped during scans, and unsorted data transparently
// downgrades binary search to a linear pass. A chart keeps rendering
// through partially bad data.
package chart

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
