// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the host-integration surface between the chart
// data engine and the application's render coordinator.
package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/chart/gpucore"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the primary integration point between the chart
// engine and GPU frameworks like gogpu. The host application implements
// DeviceHandle and passes it to backend/native.NewFromProvider, allowing
// series buffers to live on the shared GPU device.
//
// Key principle: the engine RECEIVES the device from the host, it does
// NOT create one. This enables:
//   - Shared GPU resources between the chart and the host application
//   - Zero device creation overhead in the chart engine
//   - Consistent resource management across the stack
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// chart-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// FrameSource is what the render coordinator consumes once per frame for
// each visible series: the device buffer holding packed vertex data and
// the number of points to draw. store.PointStore satisfies the per-series
// half of this contract through SeriesBuffer and SeriesPointCount.
type FrameSource interface {
	// SeriesBuffer returns the opaque device buffer for a series.
	SeriesBuffer(index int) (gpucore.BufferID, error)

	// SeriesPointCount returns the number of valid points in a series.
	SeriesPointCount(index int) (int, error)
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used in tests and CPU-only setups where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns zero-value adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
