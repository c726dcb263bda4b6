// Package gpucore defines the device abstraction consumed by the chart
// data engine.
//
// The engine needs exactly three things from a GPU backend: buffer
// creation, byte-range upload, and the device's maximum buffer size.
// DeviceAdapter captures that surface behind opaque uint64 resource IDs,
// keeping the store independent of any particular GPU API.
//
// backend/native provides the production implementation over gogpu/wgpu;
// tests use in-memory fakes.
package gpucore
